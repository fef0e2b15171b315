package apitest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/utils"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		_, _ = utils.WriteEnvelope(w, false, "invalid data provided", nil, http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	_, taken := b.accounts[req.Username]
	b.mu.Unlock()
	if taken {
		_, _ = utils.WriteEnvelope(w, false, "username already exists", nil, http.StatusConflict)
		return
	}

	user := b.AddUser(models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, req.Password)

	b.writeAuth(w, user, "registration successful")
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_, _ = utils.WriteEnvelope(w, false, "invalid data provided", nil, http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	acc, ok := b.accounts[req.Username]
	b.mu.Unlock()
	if !ok || acc.password != req.Password {
		_, _ = utils.WriteEnvelope(w, false, "invalid login/password", nil, http.StatusUnauthorized)
		return
	}

	b.writeAuth(w, acc.user, "login successful")
}

func (b *Backend) refresh(w http.ResponseWriter, r *http.Request) {
	username, err := b.verify(r.Header.Get("Authorization"))
	if err != nil {
		_, _ = utils.WriteEnvelope(w, false, err.Error(), nil, http.StatusUnauthorized)
		return
	}

	acc, ok := b.account(username)
	if !ok {
		_, _ = utils.WriteEnvelope(w, false, "user not found", nil, http.StatusUnauthorized)
		return
	}

	b.writeAuth(w, acc.user, "token refreshed")
}

func (b *Backend) profile(w http.ResponseWriter, r *http.Request) {
	username, _ := r.Context().Value(usernameCtxKey{}).(string)

	acc, ok := b.account(username)
	if !ok {
		_, _ = utils.WriteEnvelope(w, false, "user not found", nil, http.StatusNotFound)
		return
	}

	_, _ = utils.WriteEnvelope(w, true, "", acc.user, http.StatusOK)
}

func (b *Backend) userByID(w http.ResponseWriter, r *http.Request) {
	user, ok := b.lookupID(w, r)
	if !ok {
		return
	}

	_, _ = utils.WriteEnvelope(w, true, "", user, http.StatusOK)
}

func (b *Backend) deleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := b.lookupID(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	delete(b.accounts, user.Username)
	b.mu.Unlock()

	_, _ = utils.WriteEnvelope(w, true, "user deleted", "user deleted", http.StatusOK)
}

func (b *Backend) lookupID(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_, _ = utils.WriteEnvelope(w, false, "invalid user id", nil, http.StatusBadRequest)
		return models.User{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acc := range b.accounts {
		if acc.user.ID == id {
			return acc.user, true
		}
	}

	_, _ = utils.WriteEnvelope(w, false, "user not found", nil, http.StatusNotFound)
	return models.User{}, false
}

func (b *Backend) account(username string) (*account, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[username]
	return acc, ok
}

func (b *Backend) writeAuth(w http.ResponseWriter, user models.User, message string) {
	token, err := b.sign(user.Username)
	if err != nil {
		_, _ = utils.WriteEnvelope(w, false, err.Error(), nil, http.StatusInternalServerError)
		return
	}

	_, _ = utils.WriteEnvelope(w, true, message, models.AuthResponse{
		Token:     token,
		TokenType: models.DefaultScheme,
		User:      user,
	}, http.StatusOK)
}
