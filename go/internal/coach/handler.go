package coach

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
)

// RosterServiceName is the fully-qualified name of the roster service.
const RosterServiceName = "relaycoach.v1.RosterService"

// Procedure paths of the roster service.
const (
	AddAthleteProcedure      = "/" + RosterServiceName + "/AddAthlete"
	EditAthleteProcedure     = "/" + RosterServiceName + "/EditAthlete"
	DeleteAthleteProcedure   = "/" + RosterServiceName + "/DeleteAthlete"
	FormTeamProcedure        = "/" + RosterServiceName + "/FormTeam"
	DisbandTeamProcedure     = "/" + RosterServiceName + "/DisbandTeam"
	RenameTeamProcedure      = "/" + RosterServiceName + "/RenameTeam"
	SwapMemberProcedure      = "/" + RosterServiceName + "/SwapMember"
	ScheduleSessionProcedure = "/" + RosterServiceName + "/ScheduleSession"
	CancelSessionProcedure   = "/" + RosterServiceName + "/CancelSession"
	ListAthletesProcedure    = "/" + RosterServiceName + "/ListAthletes"
	ListTeamsProcedure       = "/" + RosterServiceName + "/ListTeams"
	ListSessionsProcedure    = "/" + RosterServiceName + "/ListSessions"
	FindAthletesProcedure    = "/" + RosterServiceName + "/FindAthletes"
	FindTeamsProcedure       = "/" + RosterServiceName + "/FindTeams"
)

// ErrorCodeHeader carries the domain error code on failed calls.
const ErrorCodeHeader = "Relaycoach-Error-Code"

// ListRequest is the empty body of the list procedures.
type ListRequest struct{}

// NewRosterServiceHandler builds an HTTP handler serving every roster
// procedure, and returns the path to mount it on.
func NewRosterServiceHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	listAthletes := func(ctx context.Context, _ ListRequest) (Result, error) { return svc.ListAthletes(ctx), nil }
	listTeams := func(ctx context.Context, _ ListRequest) (Result, error) { return svc.ListTeams(ctx), nil }

	mux := http.NewServeMux()
	mux.Handle(AddAthleteProcedure, connect.NewUnaryHandler(AddAthleteProcedure, unary(svc.AddAthlete), opts...))
	mux.Handle(EditAthleteProcedure, connect.NewUnaryHandler(EditAthleteProcedure, unary(svc.EditAthlete), opts...))
	mux.Handle(DeleteAthleteProcedure, connect.NewUnaryHandler(DeleteAthleteProcedure, unary(svc.DeleteAthlete), opts...))
	mux.Handle(FormTeamProcedure, connect.NewUnaryHandler(FormTeamProcedure, unary(svc.FormTeam), opts...))
	mux.Handle(DisbandTeamProcedure, connect.NewUnaryHandler(DisbandTeamProcedure, unary(svc.DisbandTeam), opts...))
	mux.Handle(RenameTeamProcedure, connect.NewUnaryHandler(RenameTeamProcedure, unary(svc.RenameTeam), opts...))
	mux.Handle(SwapMemberProcedure, connect.NewUnaryHandler(SwapMemberProcedure, unary(svc.SwapMember), opts...))
	mux.Handle(ScheduleSessionProcedure, connect.NewUnaryHandler(ScheduleSessionProcedure, unary(svc.ScheduleSession), opts...))
	mux.Handle(CancelSessionProcedure, connect.NewUnaryHandler(CancelSessionProcedure, unary(svc.CancelSession), opts...))
	mux.Handle(ListAthletesProcedure, connect.NewUnaryHandler(ListAthletesProcedure, unary(listAthletes), opts...))
	mux.Handle(ListTeamsProcedure, connect.NewUnaryHandler(ListTeamsProcedure, unary(listTeams), opts...))
	mux.Handle(ListSessionsProcedure, connect.NewUnaryHandler(ListSessionsProcedure, unary(svc.ListSessions), opts...))
	mux.Handle(FindAthletesProcedure, connect.NewUnaryHandler(FindAthletesProcedure, unary(svc.FindAthletes), opts...))
	mux.Handle(FindTeamsProcedure, connect.NewUnaryHandler(FindTeamsProcedure, unary(svc.FindTeams), opts...))

	return "/" + RosterServiceName + "/", mux
}

func unary[Req any](call func(context.Context, Req) (Result, error)) func(context.Context, *connect.Request[Req]) (*connect.Response[ResultDTO], error) {
	return func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[ResultDTO], error) {
		res, err := call(ctx, *req.Msg)
		if err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(toResultDTO(res)), nil
	}
}

func toConnectError(err error) *connect.Error {
	code := apperrors.CodeOf(err)
	cerr := connect.NewError(connectCode(code), err)
	if code != apperrors.CodeUnknown {
		cerr.Meta().Set(ErrorCodeHeader, code.String())
	}
	return cerr
}

func connectCode(code apperrors.Code) connect.Code {
	switch code {
	case apperrors.CodeValidation,
		apperrors.CodeEmptyQuery,
		apperrors.CodeInvalidTeamSize,
		apperrors.CodeInvalidSessionIndex,
		apperrors.CodeInvalidTeamIndex,
		apperrors.CodeInvalidAthleteIndex:
		return connect.CodeInvalidArgument
	case apperrors.CodeDuplicateIdentity,
		apperrors.CodeDuplicateTeamName,
		apperrors.CodeDuplicateSession:
		return connect.CodeAlreadyExists
	case apperrors.CodeMemberAlreadyAssigned,
		apperrors.CodeOverlappingSession:
		return connect.CodeFailedPrecondition
	case apperrors.CodeNotFound:
		return connect.CodeNotFound
	default:
		return connect.CodeInternal
	}
}
