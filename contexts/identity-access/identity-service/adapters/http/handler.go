package httpadapter

import (
	"context"
	"io"
	"log/slog"

	"electora/contexts/identity-access/identity-service/application"
	"electora/contexts/identity-access/identity-service/domain/entities"
	httptransport "electora/contexts/identity-access/identity-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.Register(ctx, application.RegisterInput{
		Title:        req.Title,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		MembershipID: req.MembershipID,
		Password:     req.Password,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	}, nil
}

func (h Handler) GetUserHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.Service.GetUser(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (h Handler) ListUsersHandler(ctx context.Context) (httptransport.UserListResponse, error) {
	users, err := h.Service.ListUsers(ctx)
	if err != nil {
		return httptransport.UserListResponse{}, err
	}
	items := make([]httptransport.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}
	return httptransport.UserListResponse{Items: items}, nil
}

func (h Handler) UpdateUserHandler(ctx context.Context, userID string, req httptransport.UpdateUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.UpdateUser(ctx, userID, application.UpdateUserInput{
		Title:      req.Title,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Role:       req.Role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (h Handler) DeleteUserHandler(ctx context.Context, userID string) error {
	return h.Service.DeleteUser(ctx, userID)
}

func (h Handler) ImportUsersHandler(ctx context.Context, body io.Reader) (httptransport.ImportResponse, error) {
	report, err := h.Service.ImportUsersCSV(ctx, body)
	if err != nil {
		return httptransport.ImportResponse{}, err
	}
	resp := httptransport.ImportResponse{
		Created: report.Created,
		Skipped: make([]httptransport.ImportSkippedRow, 0, len(report.Skipped)),
	}
	for _, row := range report.Skipped {
		resp.Skipped = append(resp.Skipped, httptransport.ImportSkippedRow{
			Line:   row.Line,
			Reason: row.Reason,
		})
	}
	return resp, nil
}

func toUserResponse(user entities.User) httptransport.UserResponse {
	return httptransport.UserResponse{
		UserID:       user.UserID,
		Title:        user.Title,
		FirstName:    user.FirstName,
		MiddleName:   user.MiddleName,
		LastName:     user.LastName,
		FullName:     user.FullName(),
		Email:        user.Email,
		Phone:        user.Phone,
		MembershipID: user.MembershipID,
		Role:         user.Role,
	}
}
