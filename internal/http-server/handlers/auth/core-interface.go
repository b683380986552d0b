package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	authsvc "github.com/JayeshSardesai/ERP-sub004/internal/service/auth"
)

type Core interface {
	Login(ctx context.Context, schoolCode, email, password string) (string, *entity.User, error)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrSchoolNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
