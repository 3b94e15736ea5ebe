package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	middleware "github.com/02priyeshraj/Tomato_Restaurant_Website/middlewares"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

var ErrEmailTaken = errors.New("this email already exists")

type sessionResponse struct {
	User         models.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
}

type newAdminRequest struct {
	Email       string `json:"email" validate:"notblank,emailaddr" label:"Email"`
	DisplayName string `json:"display_name" validate:"max=100" label:"Display name"`
	Password    string `json:"password" validate:"notblank,min=8" label:"Password"`
}

// RegisterAdmin creates a password admin account. Emails are stored lower case.
func RegisterAdmin(ctx context.Context, users repository.Store[models.User], email, displayName, password string) (models.User, error) {
	req := newAdminRequest{Email: email, DisplayName: displayName, Password: password}
	if err := validation.Struct(&req); err != nil {
		return models.User{}, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	count, err := users.Count(ctx, bson.M{"email": email})
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return models.User{}, ErrEmailTaken
	}

	hash, err := helper.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		Display_name: strings.TrimSpace(displayName),
		Password:     hash,
		Provider:     models.ProviderPassword,
	}
	if err := users.Insert(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *Controller) findUserByEmail(ctx context.Context, email string) (models.User, error) {
	list, err := c.Stores.Users.List(ctx, repository.Query{
		Filter:  bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
		PerPage: 1,
	})
	if err != nil {
		return models.User{}, err
	}
	if len(list) == 0 {
		return models.User{}, repository.ErrNotFound
	}
	return list[0], nil
}

// startSession issues a fresh token pair and stores it on the user, which
// invalidates whatever pair the user held before.
func (c *Controller) startSession(ctx context.Context, user models.User) (sessionResponse, error) {
	token, refreshToken, err := c.Tokens.GenerateAllTokens(user.Email, user.Display_name, user.User_id)
	if err != nil {
		return sessionResponse{}, err
	}

	user, err = c.Stores.Users.Update(ctx, user.User_id, bson.M{"token": token, "refresh_token": refreshToken})
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{User: user, Token: token, RefreshToken: refreshToken}, nil
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("login")

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &creds); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := c.findUserByEmail(ctx, creds.Email)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && user.Password == "") {
		helper.Failure(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if err != nil {
		mylog.Error("Error looking up user", err)
		helper.Failure(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if ok, msg := helper.VerifyPassword(creds.Password, user.Password); !ok {
		helper.Failure(w, http.StatusUnauthorized, msg)
		return
	}

	session, err := c.startSession(ctx, user)
	if err != nil {
		mylog.Error("Error starting session", err)
		helper.Failure(w, http.StatusInternalServerError, "Login failed")
		return
	}

	mylog.Info("Admin signed in", "user_id", user.User_id)
	helper.Success(w, http.StatusOK, "Login successful", session)
}

// Exchange a refresh token for a new token pair
func (c *Controller) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("refresh")

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := c.Tokens.ValidateToken(body.RefreshToken, helper.RefreshToken)
	if err != nil {
		helper.Failure(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	user, err := c.Stores.Users.Get(ctx, claims.Uid)
	if err != nil || user.Refresh_Token == nil || *user.Refresh_Token != body.RefreshToken {
		helper.Failure(w, http.StatusUnauthorized, "Session has ended, please sign in again")
		return
	}

	session, err := c.startSession(ctx, user)
	if err != nil {
		mylog.Error("Error refreshing session", err)
		helper.Failure(w, http.StatusInternalServerError, "Could not refresh the session")
		return
	}
	helper.Success(w, http.StatusOK, "Session refreshed", session)
}

// Sign in with an ID token from the identity provider
func (c *Controller) FederatedLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("federated_login")

	if c.Federated == nil {
		helper.Failure(w, http.StatusNotFound, "Federated sign-in is not enabled")
		return
	}

	var body struct {
		IDToken string `json:"id_token"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := c.Federated.Verify(body.IDToken)
	if err != nil {
		mylog.Warn("Rejected ID token", "error", err.Error())
		helper.Failure(w, http.StatusUnauthorized, "Sign-in was rejected")
		return
	}
	email := strings.ToLower(claims.Email)

	user, err := c.findUserByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if !slices.Contains(c.AdminEmails, email) {
			helper.Failure(w, http.StatusForbidden, "This account does not have admin access")
			return
		}
		user = models.User{Email: email, Display_name: claims.Name, Provider: models.ProviderFederated}
		if err := c.Stores.Users.Insert(ctx, &user); err != nil {
			mylog.Error("Error creating admin", err)
			helper.Failure(w, http.StatusInternalServerError, "Sign-in failed")
			return
		}
		mylog.Info("Admin created on first sign-in", "user_id", user.User_id)
	case err != nil:
		mylog.Error("Error looking up user", err)
		helper.Failure(w, http.StatusInternalServerError, "Sign-in failed")
		return
	}

	session, err := c.startSession(ctx, user)
	if err != nil {
		mylog.Error("Error starting session", err)
		helper.Failure(w, http.StatusInternalServerError, "Sign-in failed")
		return
	}
	helper.Success(w, http.StatusOK, "Login successful", session)
}

func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r)
	if !ok {
		helper.Failure(w, http.StatusUnauthorized, "Not signed in")
		return
	}
	helper.Success(w, http.StatusOK, "Session retrieved successfully", session)
}

func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	session, ok := middleware.GetSessionFromContext(r)
	if !ok {
		helper.Failure(w, http.StatusUnauthorized, "Not signed in")
		return
	}

	_, err := c.Stores.Users.Update(ctx, session.Uid, bson.M{"token": nil, "refresh_token": nil})
	if err != nil {
		storeFailure(w, c.Log.Action("logout"), err, "User not found", "Logout failed")
		return
	}
	helper.Success(w, http.StatusOK, "Logged out successfully", nil)
}

func (c *Controller) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("get_users")

	page, recordPerPage := helper.ParsePagination(r)
	total, err := c.Stores.Users.Count(ctx, nil)
	if err != nil {
		mylog.Error("Error occurred while listing users", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing users")
		return
	}
	users, err := c.Stores.Users.List(ctx, repository.Query{
		Sort:    bson.D{{Key: "email", Value: 1}},
		Page:    page,
		PerPage: recordPerPage,
	})
	if err != nil {
		mylog.Error("Error occurred while listing users", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing users")
		return
	}

	helper.WriteJSON(w, http.StatusOK, helper.Response{
		Success:    true,
		Message:    "Users retrieved successfully",
		Data:       users,
		Pagination: helper.NewPagination(page, recordPerPage, total),
	})
}

// Add another password admin
func (c *Controller) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("create_user")

	var body newAdminRequest
	if err := decodeJSON(w, r, &body); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := RegisterAdmin(ctx, c.Stores.Users, body.Email, body.DisplayName, body.Password)
	switch {
	case errors.Is(err, ErrEmailTaken):
		helper.Failure(w, http.StatusConflict, "This email already exists")
		return
	case err != nil:
		invalid(w, mylog, err)
		return
	}

	mylog.Info("Admin created", "user_id", user.User_id)
	helper.Success(w, http.StatusCreated, "User created successfully", user)
}
