package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/repository"
	"github.com/smartstore/store-system/internal/core/security"
	"github.com/smartstore/store-system/internal/infrastructure/db/memory"
)

var discardLogger = zerolog.Nop()

// spyHasher wraps the real bcrypt hasher and counts Verify calls.
type spyHasher struct {
	*security.BcryptHasher
	mu          sync.Mutex
	verifyCalls int
}

func newSpyHasher() *spyHasher {
	return &spyHasher{BcryptHasher: security.NewBcryptHasherWithCost(bcrypt.MinCost)}
}

func (h *spyHasher) Verify(plaintext, stored string) bool {
	h.mu.Lock()
	h.verifyCalls++
	h.mu.Unlock()
	return h.BcryptHasher.Verify(plaintext, stored)
}

// faultyDataManager fails every call with err.
type faultyDataManager struct {
	*memory.DataManager
	err error
}

func (d *faultyDataManager) GetUserByEmail(context.Context, string) (*domain.User, bool, error) {
	return nil, false, d.err
}

func (d *faultyDataManager) DoesUserExist(context.Context, string) (bool, error) {
	return false, d.err
}

func (d *faultyDataManager) RemoveUser(context.Context, string) (bool, error) {
	return false, d.err
}

// failingHasher cannot hash anything.
type failingHasher struct {
	*security.BcryptHasher
	err error
}

func (h failingHasher) Hash(string) (string, error) {
	return "", h.err
}

// deletingDataManager removes a user right after handing it out, as a
// concurrent DeleteUser would between a read and the following write.
type deletingDataManager struct {
	*memory.DataManager
}

func (d *deletingDataManager) GetUserByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	u, found, err := d.DataManager.GetUserByEmail(ctx, email)
	if found {
		_, _ = d.DataManager.RemoveUser(ctx, email)
	}
	return u, found, err
}

func newTestAuthService() (*AuthService, *memory.DataManager, *spyHasher) {
	dm := memory.NewDataManager()
	hasher := newSpyHasher()
	return NewAuthService(repository.NewUserRepository(dm), hasher, discardLogger), dm, hasher
}

func basicHeader(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

// ---------------------------------------------------------------------------
// AuthenticateBasic
// ---------------------------------------------------------------------------

func TestAuthService_Scenario_RegisterThenAuthenticate(t *testing.T) {
	svc, _, hasher := newTestAuthService()
	ctx := context.Background()

	user, err := svc.RegisterUserWithRole(ctx, "a@x.com", "secret", "Ann", "MANAGER")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != domain.RoleManager {
		t.Fatalf("expected role MANAGER, got %s", user.Role)
	}
	if user.PasswordHash == "secret" || !hasher.IsHashed(user.PasswordHash) {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}

	got, ok, err := svc.AuthenticateBasic(ctx, basicHeader("a@x.com", "secret"))
	if err != nil || !ok {
		t.Fatalf("expected authentication to succeed, ok=%v err=%v", ok, err)
	}
	if got.Email != "a@x.com" || got.Name != "Ann" || got.Role != domain.RoleManager {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, ok, err := svc.AuthenticateBasic(ctx, basicHeader("a@x.com", "wrong")); ok || err != nil {
		t.Fatalf("wrong password must yield absent, ok=%v err=%v", ok, err)
	}
}

func TestAuthService_Authenticate_SingleCharacterAlteration(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	const password = "s3cret!"
	if _, err := svc.RegisterUser(ctx, "b@x.com", password, "Bob"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for i := range password {
		altered := []byte(password)
		altered[i]++
		if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("b@x.com", string(altered))); ok {
			t.Errorf("altered password %q must not authenticate", altered)
		}
	}
	if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("b@x.com", password+"x")); ok {
		t.Error("extended password must not authenticate")
	}
}

func TestAuthService_Authenticate_PasswordWithColon(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "c@x.com", "pa:ss:word", "Cy"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("c@x.com", "pa:ss:word")); !ok {
		t.Fatal("password containing colons must authenticate")
	}
	if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("c@x.com", "pa")); ok {
		t.Fatal("truncated password must not authenticate")
	}
}

func TestAuthService_Authenticate_MalformedHeaders(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	if _, err := svc.RegisterUser(ctx, "a@x.com", "secret", "Ann"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	headers := map[string]string{
		"empty":           "",
		"bearer":          "Bearer xyz",
		"not base64":      "Basic not-base64!!",
		"no colon":        "Basic " + base64.StdEncoding.EncodeToString([]byte("justone-no-colon")),
		"empty payload":   "Basic ",
		"lowercase basic": "basic " + base64.StdEncoding.EncodeToString([]byte("a@x.com:secret")),
		"empty email":     basicHeader("", "secret"),
		"unknown email":   basicHeader("ghost@x.com", "secret"),
	}
	for name, h := range headers {
		t.Run(name, func(t *testing.T) {
			user, ok, err := svc.AuthenticateBasic(ctx, h)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if ok || user != nil {
				t.Fatalf("expected absent, got %+v", user)
			}
		})
	}
}

func TestAuthService_Authenticate_LegacyPlaintext(t *testing.T) {
	svc, dm, hasher := newTestAuthService()
	ctx := context.Background()

	if _, err := dm.PersistUser(ctx, &domain.User{
		Email:        "legacy@x.com",
		PasswordHash: "abc123",
		Name:         "Old Timer",
		Role:         domain.RoleUser,
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, ok, err := svc.AuthenticateBasic(ctx, basicHeader("legacy@x.com", "abc123")); !ok || err != nil {
		t.Fatalf("legacy plaintext must authenticate, ok=%v err=%v", ok, err)
	}
	for _, wrong := range []string{"abc124", "ABC123", "abc12", "", "abc123 "} {
		if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("legacy@x.com", wrong)); ok {
			t.Errorf("legacy record must reject %q", wrong)
		}
	}
	if hasher.verifyCalls != 0 {
		t.Fatalf("legacy records must never reach Verify, got %d calls", hasher.verifyCalls)
	}
}

func TestAuthService_Authenticate_EmptyStoredPassword(t *testing.T) {
	svc, dm, _ := newTestAuthService()
	ctx := context.Background()

	_, _ = dm.PersistUser(ctx, &domain.User{Email: "nopw@x.com", Name: "No Password", Role: domain.RoleUser})

	if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("nopw@x.com", "")); ok {
		t.Fatal("record without a stored password must never authenticate")
	}
}

func TestAuthService_Authenticate_BackendFaultPropagates(t *testing.T) {
	boom := errors.New("backend down")
	dm := &faultyDataManager{DataManager: memory.NewDataManager(), err: boom}
	svc := NewAuthService(repository.NewUserRepository(dm), newSpyHasher(), discardLogger)

	_, ok, err := svc.AuthenticateBasic(context.Background(), basicHeader("a@x.com", "secret"))
	if ok {
		t.Fatal("expected no user")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func TestAuthService_Register_DefaultsToUser(t *testing.T) {
	svc, _, _ := newTestAuthService()

	user, err := svc.RegisterUser(context.Background(), "d@x.com", "pw", "Dee")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected USER, got %s", user.Role)
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, dm, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		email, password, name, role string
		field                       string
	}{
		{"", "pw", "Ann", "USER", "email"},
		{"  ", "pw", "Ann", "USER", "email"},
		{"a@x.com", "", "Ann", "USER", "password"},
		{"a@x.com", "pw", " ", "USER", "name"},
		{"a@x.com", "pw", "Ann", "", "role"},
	}
	for _, tc := range cases {
		_, err := svc.RegisterUserWithRole(ctx, tc.email, tc.password, tc.name, tc.role)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError for %s, got %v", tc.field, err)
		}
		if ve.Field != tc.field {
			t.Errorf("expected field %q, got %q", tc.field, ve.Field)
		}
	}

	users, _ := dm.GetAllUsers(ctx)
	if len(users) != 0 {
		t.Fatalf("invalid registrations must not persist anything, got %d users", len(users))
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "e@x.com", "pw", "Eve"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.RegisterUserWithRole(ctx, "e@x.com", "other", "Someone Else", "ADMIN")
	var dup *domain.DuplicateUserError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateUserError, got %v", err)
	}
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatal("DuplicateUserError must match ErrUserExists")
	}

	stored, _, _ := svc.GetUserByEmail(ctx, "e@x.com")
	if stored.Name != "Eve" || stored.Role != domain.RoleUser {
		t.Fatalf("duplicate attempt must not overwrite the record: %+v", stored)
	}
}

func TestAuthService_Register_ConcurrentSameEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RegisterUser(ctx, "race@x.com", "pw", "Racer")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrUserExists):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one registration must succeed, got %d", succeeded)
	}
}

func TestAuthService_Register_RoleRoundTrip(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		input string
		want  domain.Role
	}{
		{"admin", domain.RoleAdmin},
		{"Admin", domain.RoleAdmin},
		{"ADMIN", domain.RoleAdmin},
		{"manager", domain.RoleManager},
		{"Manager", domain.RoleManager},
		{"MANAGER", domain.RoleManager},
		{"user", domain.RoleUser},
		{"User", domain.RoleUser},
		{"USER", domain.RoleUser},
		{"root", domain.RoleUser},
		{"superuser", domain.RoleUser},
	}
	for i, tc := range cases {
		email := strings.ToLower(tc.input) + "-" + string(rune('a'+i)) + "@x.com"
		user, err := svc.RegisterUserWithRole(ctx, email, "pw", "Name", tc.input)
		if err != nil {
			t.Fatalf("role %q: register failed: %v", tc.input, err)
		}
		if user.Role != tc.want {
			t.Errorf("role %q: want %s, got %s", tc.input, tc.want, user.Role)
		}
	}
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

func TestAuthService_UserExists(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	_, _ = svc.RegisterUser(ctx, "f@x.com", "pw", "Fay")

	if ok, _ := svc.UserExists(ctx, "f@x.com"); !ok {
		t.Error("expected registered user to exist")
	}
	if ok, _ := svc.UserExists(ctx, "F@X.COM"); ok {
		t.Error("email lookup is case-sensitive")
	}
	if ok, _ := svc.UserExists(ctx, "ghost@x.com"); ok {
		t.Error("unknown user must not exist")
	}
}

func TestAuthService_BlankEmailShortCircuits(t *testing.T) {
	dm := &faultyDataManager{DataManager: memory.NewDataManager(), err: errors.New("must not be called")}
	svc := NewAuthService(repository.NewUserRepository(dm), newSpyHasher(), discardLogger)
	ctx := context.Background()

	if ok, err := svc.UserExists(ctx, " "); ok || err != nil {
		t.Errorf("UserExists: ok=%v err=%v", ok, err)
	}
	if u, ok, err := svc.GetUserByEmail(ctx, ""); u != nil || ok || err != nil {
		t.Errorf("GetUserByEmail: u=%v ok=%v err=%v", u, ok, err)
	}
	if u, ok, err := svc.UpdateUser(ctx, "", "pw", "Name"); u != nil || ok || err != nil {
		t.Errorf("UpdateUser: u=%v ok=%v err=%v", u, ok, err)
	}
	if ok, err := svc.DeleteUser(ctx, "\t"); ok || err != nil {
		t.Errorf("DeleteUser: ok=%v err=%v", ok, err)
	}
}

func TestAuthService_GetAllUsers(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	_, _ = svc.RegisterUser(ctx, "g@x.com", "pw", "Gus")
	_, _ = svc.RegisterUser(ctx, "h@x.com", "pw", "Hal")

	users, err := svc.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("GetAllUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

// ---------------------------------------------------------------------------
// Update / delete
// ---------------------------------------------------------------------------

func TestAuthService_Update_NoOp(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	orig, _ := svc.RegisterUserWithRole(ctx, "i@x.com", "pw", "Ivy", "ADMIN")

	got, ok, err := svc.UpdateUser(ctx, "i@x.com", "", "")
	if err != nil || !ok {
		t.Fatalf("expected user, ok=%v err=%v", ok, err)
	}
	if got.PasswordHash != orig.PasswordHash || got.Name != orig.Name || got.Role != orig.Role {
		t.Fatalf("no-op update changed the record: %+v vs %+v", got, orig)
	}
}

func TestAuthService_Update_PasswordOnly(t *testing.T) {
	svc, _, hasher := newTestAuthService()
	ctx := context.Background()
	orig, _ := svc.RegisterUserWithRole(ctx, "j@x.com", "oldpass", "Jo", "MANAGER")

	got, ok, err := svc.UpdateUser(ctx, "j@x.com", "newpass", "")
	if err != nil || !ok {
		t.Fatalf("expected user, ok=%v err=%v", ok, err)
	}
	if got.PasswordHash == "newpass" || !hasher.IsHashed(got.PasswordHash) {
		t.Fatalf("password must be stored hashed, got %q", got.PasswordHash)
	}
	if got.PasswordHash == orig.PasswordHash {
		t.Fatal("password hash must change")
	}
	if got.Name != "Jo" || got.Role != domain.RoleManager {
		t.Fatalf("name and role must be untouched: %+v", got)
	}

	if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("j@x.com", "newpass")); !ok {
		t.Error("new password must authenticate")
	}
	if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("j@x.com", "oldpass")); ok {
		t.Error("old password must no longer authenticate")
	}
}

func TestAuthService_Update_NameOnly(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	orig, _ := svc.RegisterUser(ctx, "k@x.com", "pw", "Kim")

	got, ok, err := svc.UpdateUser(ctx, "k@x.com", "  ", "Kimberly")
	if err != nil || !ok {
		t.Fatalf("expected user, ok=%v err=%v", ok, err)
	}
	if got.Name != "Kimberly" {
		t.Fatalf("expected new name, got %q", got.Name)
	}
	if got.PasswordHash != orig.PasswordHash {
		t.Fatal("blank password must keep stored hash")
	}
}

func TestAuthService_Update_UnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService()

	got, ok, err := svc.UpdateUser(context.Background(), "ghost@x.com", "pw", "Ghost")
	if err != nil || ok || got != nil {
		t.Fatalf("expected absent, got %+v ok=%v err=%v", got, ok, err)
	}
}

func TestAuthService_Delete(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if ok, err := svc.DeleteUser(ctx, "never@x.com"); ok || err != nil {
		t.Fatalf("unknown email: ok=%v err=%v", ok, err)
	}

	_, _ = svc.RegisterUser(ctx, "l@x.com", "pw", "Lee")
	if ok, err := svc.DeleteUser(ctx, "l@x.com"); !ok || err != nil {
		t.Fatalf("first delete: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.DeleteUser(ctx, "l@x.com"); ok || err != nil {
		t.Fatalf("second delete: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("l@x.com", "pw")); ok {
		t.Fatal("deleted user must not authenticate")
	}
}

func TestAuthService_Delete_BackendFault(t *testing.T) {
	boom := errors.New("backend down")
	dm := &faultyDataManager{DataManager: memory.NewDataManager(), err: boom}
	svc := NewAuthService(repository.NewUserRepository(dm), newSpyHasher(), discardLogger)

	if _, err := svc.DeleteUser(context.Background(), "a@x.com"); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestAuthService_LongPasswords(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	long := strings.Repeat("p", 100)

	if _, err := svc.RegisterUser(ctx, "long@x.com", long, "Lon"); err != nil {
		t.Fatalf("register with 100-byte password failed: %v", err)
	}
	if _, ok, err := svc.AuthenticateBasic(ctx, basicHeader("long@x.com", long)); !ok || err != nil {
		t.Fatalf("100-byte password must authenticate, ok=%v err=%v", ok, err)
	}
	if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("long@x.com", long[:72])); ok {
		t.Fatal("a 72-byte prefix must not authenticate")
	}

	longer := strings.Repeat("q", 200)
	if _, ok, err := svc.UpdateUser(ctx, "long@x.com", longer, ""); !ok || err != nil {
		t.Fatalf("update with 200-byte password failed, ok=%v err=%v", ok, err)
	}
	if _, ok, _ := svc.AuthenticateBasic(ctx, basicHeader("long@x.com", longer)); !ok {
		t.Fatal("updated long password must authenticate")
	}
}

func TestAuthService_HasherErrorsAreWrapped(t *testing.T) {
	boom := errors.New("hasher broken")
	dm := memory.NewDataManager()
	hasher := failingHasher{BcryptHasher: security.NewBcryptHasherWithCost(bcrypt.MinCost), err: boom}
	svc := NewAuthService(repository.NewUserRepository(dm), hasher, discardLogger)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "a@x.com", "pw", "Ann")
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "register user: ") {
		t.Fatalf("expected wrapped register error, got %v", err)
	}

	if _, err := dm.InsertUser(ctx, &domain.User{Email: "b@x.com", Name: "Bo"}); err != nil {
		t.Fatal(err)
	}
	_, _, err = svc.UpdateUser(ctx, "b@x.com", "new", "")
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "update user: ") {
		t.Fatalf("expected wrapped update error, got %v", err)
	}
}

func TestAuthService_Update_DoesNotRecreateDeletedUser(t *testing.T) {
	dm := &deletingDataManager{DataManager: memory.NewDataManager()}
	svc := NewAuthService(repository.NewUserRepository(dm), newSpyHasher(), discardLogger)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "m@x.com", "pw", "Max"); err != nil {
		t.Fatal(err)
	}

	got, ok, err := svc.UpdateUser(ctx, "m@x.com", "", "Maxine")
	if err != nil || ok || got != nil {
		t.Fatalf("expected absent after concurrent delete, got %+v ok=%v err=%v", got, ok, err)
	}
	if exists, _ := dm.DoesUserExist(ctx, "m@x.com"); exists {
		t.Fatal("update must not bring a deleted user back")
	}
}
