package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"portalempleos/internal/client"
	"portalempleos/internal/config"
	"portalempleos/internal/database"
	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
	"portalempleos/internal/session"
)

type postCall struct {
	endpoint string
	body     any
}

type fakePoster struct {
	mu    sync.Mutex
	calls []postCall
	env   *models.Envelope
	err   error
}

func (f *fakePoster) Post(ctx context.Context, endpoint string, body any) (*models.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, postCall{endpoint: endpoint, body: body})
	return f.env, f.err
}

func envelope(code errcodes.Code, description, data string) *models.Envelope {
	env := &models.Envelope{Code: code, Description: description}
	if data != "" {
		env.Data = json.RawMessage(data)
	}
	return env
}

type mapKV map[string]string

func (m mapKV) Get(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", database.ErrKeyNotFound
	}
	return v, nil
}
func (m mapKV) Set(key, value string) error { m[key] = value; return nil }
func (m mapKV) Delete(key string) error     { delete(m, key); return nil }

type prefixEncryptor struct{}

func (prefixEncryptor) Encrypt(plain string) (string, error) { return "enc:" + plain, nil }

var endpoints = config.NewEndpoints(config.DefaultAPIPrefix)

func newDeps(poster Poster) Deps {
	return Deps{
		Client:    poster,
		Endpoints: endpoints,
		Store:     session.NewStore(mapKV{}),
		Encryptor: prefixEncryptor{},
	}
}

func validCandidate() models.CandidateRegistration {
	return models.CandidateRegistration{
		Name:            "Ana",
		LastName:        "Gómez",
		Email:           "ana@example.com",
		Password:        "clave123",
		ConfirmPassword: "clave123",
		ResumeURL:       "https://cv.example.com/ana.pdf",
		SkillList:       []int64{1, 4},
	}
}

func validEmployer() models.EmployerRegistration {
	return models.EmployerRegistration{
		Name:      "Luis",
		LastName:  "Paz",
		Email:     "luis@empresa.com",
		Password:  "clave123",
		CompanyID: 2,
	}
}

// backendClient wires a real client to an httptest backend answering with response
func backendClient(t *testing.T, response string) (*client.Client, *[]map[string]any) {
	t.Helper()
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{BaseURL: srv.URL, HeaderMode: config.HeaderModeAccessToken}
	tokens := client.NewTokenProvider(client.TokenProviderConfig{Mode: config.AuthModeStatic, StaticToken: "token_test1234"})
	return client.New(cfg, tokens, srv.Client()), &bodies
}

func TestLoginNotFoundUsesLoginMessage(t *testing.T) {
	c, _ := backendClient(t, `{"code":"0404","description":"user does not exist"}`)
	d := newDeps(c)
	svc := NewAuthService(d)

	_, err := svc.Login(context.Background(), "a@a.com", "pw")
	if err == nil {
		t.Fatal("Login succeeded")
	}
	if err.Error() != "Usuario o contraseña incorrectos" {
		t.Errorf("message = %q", err.Error())
	}
	svcErr, ok := AsError(err)
	if !ok || svcErr.Kind != KindApplication || svcErr.Code != errcodes.NotFound {
		t.Errorf("error = %#v", err)
	}
	if d.Store.IsAuthenticated() {
		t.Error("failed login created a session")
	}
}

func TestLoginSavesSession(t *testing.T) {
	poster := &fakePoster{env: envelope(errcodes.Success, "ok", `{"user_id":9,"first_name":"Ana","last_name":"Gómez","role":"candidate"}`)}
	d := newDeps(poster)
	svc := NewAuthService(d)

	user, err := svc.Login(context.Background(), " ana@example.com ", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	want := &models.UserData{UserID: 9, FirstName: "Ana", LastName: "Gómez", Role: models.RoleCandidate}
	if !reflect.DeepEqual(user, want) {
		t.Errorf("user = %+v", user)
	}
	if !reflect.DeepEqual(svc.CurrentUser(), want) {
		t.Errorf("session = %+v", svc.CurrentUser())
	}

	sent := poster.calls[0]
	if sent.endpoint != "/portalEmpleos/v1/login" {
		t.Errorf("endpoint = %q", sent.endpoint)
	}
	if req := sent.body.(models.LoginRequest); req.Email != "ana@example.com" || req.Password != "pw" {
		t.Errorf("body = %+v", req)
	}

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if svc.IsAuthenticated() {
		t.Error("still authenticated after Logout")
	}
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	poster := &fakePoster{env: envelope(errcodes.Success, "ok", `{"user_id":1,"first_name":"X","role":"admin"}`)}
	d := newDeps(poster)

	user, err := NewAuthService(d).Login(context.Background(), "x@x.com", "pw")
	if user != nil {
		t.Errorf("user = %+v, want nil", user)
	}
	if !errors.Is(err, ErrInvalidUserType) {
		t.Fatalf("error = %v, want ErrInvalidUserType", err)
	}
	if err.Error() != "Tipo de usuario no válido" {
		t.Errorf("message = %q", err.Error())
	}
	if d.Store.IsAuthenticated() {
		t.Error("unknown role was saved as the session")
	}
}

func TestLoginWithoutDataFails(t *testing.T) {
	poster := &fakePoster{env: envelope(errcodes.Success, "ok", "")}
	_, err := NewAuthService(newDeps(poster)).Login(context.Background(), "a@a.com", "pw")
	if svcErr, ok := AsError(err); !ok || svcErr.Message != errcodes.MsgConnection {
		t.Errorf("error = %v", err)
	}
}

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{"email required", "", "pw", "El correo electrónico es obligatorio"},
		{"password required", "a@a.com", "", "La contraseña es obligatoria"},
		{"email too long", strings.Repeat("a", 45) + "@a.com", "pw", "El correo electrónico no puede exceder 50 caracteres"},
		{"password too long", "a@a.com", strings.Repeat("x", 31), "La contraseña no puede exceder 30 caracteres"},
		{"email malformed", "not-an-email", "pw", "Ingresá un correo electrónico válido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poster := &fakePoster{}
			_, err := NewAuthService(newDeps(poster)).Login(context.Background(), tt.email, tt.password)
			if !IsValidation(err) {
				t.Fatalf("error = %v, want validation error", err)
			}
			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}
			if len(poster.calls) != 0 {
				t.Errorf("network calls = %d, want 0", len(poster.calls))
			}
		})
	}
}

func TestRegisterCandidateNameTooLong(t *testing.T) {
	poster := &fakePoster{}
	reg := validCandidate()
	reg.Name = strings.Repeat("n", 21)

	_, err := NewCandidateService(newDeps(poster)).RegisterCandidate(context.Background(), reg)
	if !IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "nombre") {
		t.Errorf("message %q does not mention nombre", err.Error())
	}
	if len(poster.calls) != 0 {
		t.Errorf("network calls = %d, want 0", len(poster.calls))
	}
}

func TestRegisterCandidateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CandidateRegistration)
		want   string
	}{
		{"ftp resume url", func(r *models.CandidateRegistration) { r.ResumeURL = "ftp://x" }, "La URL del currículum debe comenzar con http:// o https://"},
		{"relative resume url", func(r *models.CandidateRegistration) { r.ResumeURL = "cv.pdf" }, "La URL del currículum debe comenzar con http:// o https://"},
		{"resume url too long", func(r *models.CandidateRegistration) { r.ResumeURL = "https://x.com/" + strings.Repeat("a", 90) }, "La URL del currículum no puede exceder 100 caracteres"},
		{"last name too long", func(r *models.CandidateRegistration) { r.LastName = strings.Repeat("l", 21) }, "El apellido no puede exceder 20 caracteres"},
		{"email too long", func(r *models.CandidateRegistration) { r.Email = strings.Repeat("e", 61) }, "El correo electrónico no puede exceder 60 caracteres"},
		{"password too long", func(r *models.CandidateRegistration) { r.Password = strings.Repeat("p", 31); r.ConfirmPassword = r.Password }, "La contraseña no puede exceder 30 caracteres"},
		{"blank name", func(r *models.CandidateRegistration) { r.Name = "   " }, "El nombre es obligatorio"},
		{"password mismatch", func(r *models.CandidateRegistration) { r.ConfirmPassword = "otra" }, "Las contraseñas no coinciden"},
		{"no skills", func(r *models.CandidateRegistration) { r.SkillList = nil }, "Seleccioná al menos una habilidad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poster := &fakePoster{}
			reg := validCandidate()
			tt.mutate(&reg)

			_, err := NewCandidateService(newDeps(poster)).RegisterCandidate(context.Background(), reg)
			if !IsValidation(err) {
				t.Fatalf("error = %v, want validation error", err)
			}
			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}
			if len(poster.calls) != 0 {
				t.Errorf("network calls = %d, want 0", len(poster.calls))
			}
		})
	}
}

func TestRegisterCandidateSendsEncryptedPayload(t *testing.T) {
	c, bodies := backendClient(t, `{"code":"0200","description":"ok"}`)

	env, err := NewCandidateService(newDeps(c)).RegisterCandidate(context.Background(), validCandidate())
	if err != nil {
		t.Fatalf("RegisterCandidate: %v", err)
	}
	if env.Code != errcodes.Success {
		t.Errorf("code = %q", env.Code)
	}

	body := (*bodies)[0]
	if body["password"] != "enc:clave123" {
		t.Errorf("password = %v", body["password"])
	}
	if _, ok := body["confirm_password"]; ok {
		t.Error("confirm_password was forwarded to the backend")
	}
	if !reflect.DeepEqual(body["skill_list"], []any{float64(1), float64(4)}) {
		t.Errorf("skill_list = %v", body["skill_list"])
	}
}

func TestRegisterCandidateErrorCodes(t *testing.T) {
	tests := []struct {
		code        errcodes.Code
		description string
		want        string
	}{
		{errcodes.UserAlreadyRegistered, "dup", "El usuario ya está registrado"},
		{errcodes.IncorrectDataLength, "len", "Longitud de datos incorrecta"},
		{errcodes.BadRequest, "bad", errcodes.MsgBadRequest},
		{errcodes.InternalError, "", errcodes.MsgInternalError},
		{"0499", "otro problema", "otro problema"},
		{"0499", "", errcodes.MsgDefault},
	}

	for _, tt := range tests {
		poster := &fakePoster{env: envelope(tt.code, tt.description, "")}
		_, err := NewCandidateService(newDeps(poster)).RegisterCandidate(context.Background(), validCandidate())
		if err == nil || err.Error() != tt.want {
			t.Errorf("code %s: error = %v, want %q", tt.code, err, tt.want)
		}
	}
}

func TestRegisterEmployer(t *testing.T) {
	poster := &fakePoster{env: envelope(errcodes.NotFound, "company", "")}
	svc := NewEmployerService(newDeps(poster))

	_, err := svc.RegisterEmployer(context.Background(), validEmployer())
	if err == nil || err.Error() != "Empresa no encontrada" {
		t.Errorf("error = %v, want Empresa no encontrada", err)
	}
	sent := poster.calls[0].body.(models.EmployerRegistration)
	if sent.Password != "enc:clave123" || sent.CompanyID != 2 {
		t.Errorf("body = %+v", sent)
	}

	reg := validEmployer()
	reg.CompanyID = 0
	if _, err := svc.RegisterEmployer(context.Background(), reg); err == nil || err.Error() != "Seleccioná una empresa" {
		t.Errorf("error = %v, want company validation", err)
	}
	if len(poster.calls) != 1 {
		t.Errorf("network calls = %d, want 1", len(poster.calls))
	}
}

func TestTransportFailuresUseConnectionMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"http status", &client.HTTPError{StatusCode: 503}, KindTransport},
		{"token", client.ErrTokenFetch, KindTransport},
		{"parse", client.ErrParse, KindParse},
		{"network", errors.New("dial tcp: connection refused"), KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poster := &fakePoster{err: tt.err}
			_, err := NewSkillService(newDeps(poster)).GetSkillsList(context.Background())

			svcErr, ok := AsError(err)
			if !ok {
				t.Fatalf("error = %v, want *Error", err)
			}
			if svcErr.Kind != tt.kind || svcErr.Message != errcodes.MsgConnection {
				t.Errorf("error = %+v", svcErr)
			}
			if !errors.Is(err, tt.err) {
				t.Error("underlying error not wrapped")
			}
		})
	}
}

func TestGetAvailableJobsReturnsDataUnchanged(t *testing.T) {
	data := `[{"company_id":1,"company_name":"Acme","job_title":"Go Developer","job_description":"APIs","location":"Córdoba","requirements":"Go","salary":"1000"},` +
		`{"company_id":2,"company_name":"Globex","job_title":"QA","job_description":"Testing","location":"Remoto","requirements":"","salary":""}]`
	c, bodies := backendClient(t, `{"code":"0200","description":"ok","data":`+data+`}`)
	svc := NewJobService(newDeps(c))

	jobs, err := svc.GetAvailableJobs(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetAvailableJobs: %v", err)
	}

	var want []models.Job
	if err := json.Unmarshal([]byte(data), &want); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(jobs, want) {
		t.Errorf("jobs = %+v, want %+v", jobs, want)
	}
	if len((*bodies)[0]) != 0 {
		t.Errorf("body = %v, want {}", (*bodies)[0])
	}

	if _, err := svc.GetAvailableJobs(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	if (*bodies)[1]["company_id"] != float64(3) {
		t.Errorf("body = %v, want company_id 3", (*bodies)[1])
	}
}

func TestGetAvailableJobsEmpty(t *testing.T) {
	poster := &fakePoster{env: envelope(errcodes.Success, "ok", "")}
	jobs, err := NewJobService(newDeps(poster)).GetAvailableJobs(context.Background(), 0)
	if err != nil || jobs == nil || len(jobs) != 0 {
		t.Errorf("jobs = %v, err = %v", jobs, err)
	}
}

func TestCatalogs(t *testing.T) {
	poster := &fakePoster{env: envelope(errcodes.Success, "ok", `[{"skill_id":1,"skill_name":"Go"},{"skill_id":2,"name":"SQL"}]`)}
	skills, err := NewSkillService(newDeps(poster)).GetSkillsList(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []models.Skill{{SkillID: 1, Name: "Go"}, {SkillID: 2, Name: "SQL"}}
	if !reflect.DeepEqual(skills, want) {
		t.Errorf("skills = %+v", skills)
	}

	catalog := NewCatalogService(newDeps(&fakePoster{env: envelope(errcodes.Success, "ok", `[{"id":2,"name":"Globex"}]`)}))
	companies, err := catalog.GetCompanies(context.Background())
	if err != nil || len(companies) != 1 || companies[0].Name != "Globex" {
		t.Errorf("companies = %+v, err = %v", companies, err)
	}

	catalog = NewCatalogService(newDeps(&fakePoster{env: envelope(errcodes.InternalError, "", "")}))
	if _, err := catalog.GetLocations(context.Background()); err == nil || err.Error() != errcodes.MsgInternalError {
		t.Errorf("error = %v", err)
	}
}

func TestObserverSeesStateMachine(t *testing.T) {
	var got []State
	record := func(tr Transition) {
		if len(got) == 0 {
			got = append(got, tr.From)
		}
		got = append(got, tr.To)
	}

	d := newDeps(&fakePoster{env: envelope(errcodes.Success, "ok", "")})
	d.Observer = record
	if _, err := NewCandidateService(d).RegisterCandidate(context.Background(), validCandidate()); err != nil {
		t.Fatal(err)
	}
	if want := []State{StateIdle, StateValidating, StateSending, StateSuccess}; !reflect.DeepEqual(got, want) {
		t.Errorf("success path = %v, want %v", got, want)
	}

	got = nil
	bad := validCandidate()
	bad.ResumeURL = "ftp://x"
	NewCandidateService(d).RegisterCandidate(context.Background(), bad)
	if want := []State{StateIdle, StateValidating, StateRejected}; !reflect.DeepEqual(got, want) {
		t.Errorf("rejected path = %v, want %v", got, want)
	}

	got = nil
	d.Client = &fakePoster{err: errors.New("offline")}
	NewSkillService(d).GetSkillsList(context.Background())
	if want := []State{StateIdle, StateValidating, StateSending, StateFailed}; !reflect.DeepEqual(got, want) {
		t.Errorf("failed path = %v, want %v", got, want)
	}
	if !got[len(got)-1].Terminal() {
		t.Error("last state is not terminal")
	}
}

func TestGuardRejectsConcurrentAction(t *testing.T) {
	g := NewGuard()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error)
	go func() {
		done <- g.Do("register_candidate", func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	if err := g.Do("register_candidate", func() error { return nil }); !errors.Is(err, ErrInFlight) {
		t.Errorf("second Do = %v, want ErrInFlight", err)
	}
	if err := g.Do("login", func() error { return nil }); err != nil {
		t.Errorf("other action = %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if err := g.Do("register_candidate", func() error { return nil }); err != nil {
		t.Errorf("Do after completion = %v", err)
	}
}
