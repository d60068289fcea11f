package service

import (
	"context"
	"testing"

	"workhive/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authFixture() (*userStore, AuthService) {
	store := newUserStore()
	svc := NewAuthService(
		&fakeUserRepo{store: store},
		&userTxManager{store: store},
		[]byte("test-secret"),
	)
	return store, svc
}

func seedUser(store *userStore, email, password, status string, role model.Role) uuid.UUID {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	id := uuid.New()
	store.users[id] = model.User{
		ID: id, Name: "Test User", Email: email, Phone: "0900000099",
		Password: string(hashed), Role: role, Status: status,
	}
	return id
}

func TestLogin(t *testing.T) {
	store, svc := authFixture()
	userID := seedUser(store, "anna@workhive.io", "hunter22", model.StatusActive, model.RoleCustomer)

	res, err := svc.Login(context.Background(), LoginRequest{
		Email: "anna@workhive.io", Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	token, err := jwt.Parse(res.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "customer", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	store, svc := authFixture()
	seedUser(store, "anna@workhive.io", "hunter22", model.StatusActive, model.RoleCustomer)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "anna@workhive.io", Password: "wrong",
	})
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, be.Kind)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, svc := authFixture()

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "nobody@workhive.io", Password: "hunter22",
	})
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, be.Kind)
}

func TestLoginInactiveUser(t *testing.T) {
	store, svc := authFixture()
	seedUser(store, "anna@workhive.io", "hunter22", model.StatusInactive, model.RoleCustomer)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "anna@workhive.io", Password: "hunter22",
	})
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, be.Kind)
}

func TestRegister(t *testing.T) {
	store, svc := authFixture()

	res, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Anna", Email: "anna@workhive.io", Phone: "0900000010",
		Password: "hunter22", Company: "Acme",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleCustomer, res.Role)
	assert.Equal(t, "Acme", res.Company)
	assert.Len(t, store.users, 1)
	assert.Len(t, store.customers, 1)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	store, svc := authFixture()
	seedUser(store, "anna@workhive.io", "hunter22", model.StatusActive, model.RoleCustomer)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Other", Email: "other@workhive.io", Phone: "0900000099",
		Password: "hunter22",
	})
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, be.Kind)
	assert.Contains(t, be.Message, "phone")
}
