package auth

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/handler/handlertest"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository/mocks"
	authService "github.com/jwalitptl/hospital-api/internal/service/auth"
	"github.com/jwalitptl/hospital-api/pkg/auth"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/security"
	"github.com/jwalitptl/hospital-api/pkg/storage"
)

const testPassword = "Str0ng-Passw0rd!"

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type testEnv struct {
	router   http.Handler
	users    *mocks.UserRepository
	hasher   security.PasswordHasher
	mediaDir string
}

func setup(t *testing.T) *testEnv {
	mediaDir := t.TempDir()
	media, err := storage.NewLocalStore(mediaDir, "/media", 1<<20)
	require.NoError(t, err)

	users := &mocks.UserRepository{}
	hasher := security.NewBcryptHasher(4)
	jwt := auth.NewJWTService(auth.Config{
		Secret:     "test-secret",
		Issuer:     "hospital-api",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	svc := authService.NewService(users, jwt, auth.NewMemoryRevocationStore(), hasher, media, nil, logger.Nop())

	return &testEnv{
		router:   handlertest.NewRouter(t, handlertest.Tokens{}, NewHandler(svc)),
		users:    users,
		hasher:   hasher,
		mediaDir: mediaDir,
	}
}

func TestRegisterPatient_PasswordMismatch(t *testing.T) {
	env := setup(t)

	w := handlertest.Do(env.router, http.MethodPost, "/api/auth/register/patient/", "", map[string]string{
		"email":         "jane@example.com",
		"password":      testPassword,
		"password2":     testPassword + "x",
		"first_name":    "Jane",
		"last_name":     "Doe",
		"date_of_birth": "1990-04-12",
		"blood_group":   "O+",
	})

	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, []string{"Password fields didn't match."}, handlertest.Decode(t, w).Errors["password"])
	env.users.AssertNotCalled(t, "CreatePatientAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterPatient_MissingRequiredFields(t *testing.T) {
	env := setup(t)

	w := handlertest.Do(env.router, http.MethodPost, "/api/auth/register/patient/", "", map[string]string{
		"email":      "jane@example.com",
		"password":   testPassword,
		"password2":  testPassword,
		"first_name": "Jane",
		"last_name":  "Doe",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := handlertest.Decode(t, w).Errors
	assert.Equal(t, []string{"This field is required."}, errs["date_of_birth"])
	assert.Equal(t, []string{"This field is required."}, errs["blood_group"])
}

func TestRegisterPatient_MultipartWithPicture(t *testing.T) {
	env := setup(t)
	env.users.On("EmailExists", mock.Anything, "jane@example.com").Return(false, nil)
	env.users.On("CreatePatientAccount", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Patient")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = uuid.New()
			args.Get(2).(*model.Patient).ID = uuid.New()
		}).
		Return(nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		"email":         "jane@example.com",
		"password":      testPassword,
		"password2":     testPassword,
		"first_name":    "Jane",
		"last_name":     "Doe",
		"date_of_birth": "1990-04-12",
		"blood_group":   "AB-",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("profile_picture", "me.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register/patient/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result model.RegistrationResult
	require.NoError(t, json.Unmarshal(handlertest.Decode(t, w).Data, &result))
	assert.Equal(t, "Patient registered successfully", result.Message)
	assert.Equal(t, model.GenderOther, result.User.Gender)
	require.NotNil(t, result.User.ProfilePicture)

	files, err := os.ReadDir(filepath.Join(env.mediaDir, storage.ProfilePictureDir))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestLogin(t *testing.T) {
	env := setup(t)
	hash, err := env.hasher.Hash(testPassword)
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "doc@example.com", PasswordHash: hash, UserType: model.UserTypeDoctor, IsActive: true}
	env.users.On("GetByEmail", mock.Anything, "doc@example.com").Return(user, nil)

	w := handlertest.Do(env.router, http.MethodPost, "/api/auth/token/", "", map[string]string{
		"email": "doc@example.com", "password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tokens model.TokenResponse
	require.NoError(t, json.Unmarshal(handlertest.Decode(t, w).Data, &tokens))
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)

	w = handlertest.Do(env.router, http.MethodPost, "/api/auth/token/", "", map[string]string{
		"email": "doc@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No active account found with the given credentials", handlertest.Decode(t, w).Message)
}
