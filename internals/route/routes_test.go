package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"laporbug_backend/internals/configs"
	"laporbug_backend/internals/constants"
	"laporbug_backend/internals/databases/dbtest"
	authHelper "laporbug_backend/internals/features/users/auth/helper"
	authModel "laporbug_backend/internals/features/users/auth/model"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
	helperOSS "laporbug_backend/internals/helpers/oss"
)

const testSecret = "rahasia-test"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = testSecret
	configs.JWTTTL = time.Hour
	configs.BugPhotoMaxSize = 1 << 20

	db := dbtest.OpenWithReferences(t)
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.ErrorHandler,
	})
	SetupRoutes(app, db, helperOSS.NewMemoryBlobService("memory://test"))
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username, password, role, key string) helperAuth.Principal {
	t.Helper()
	hashed, err := authHelper.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := authModel.UserModel{Username: username, Password: hashed, Role: role, NaturalKey: key, DisplayName: username, IsActive: true}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return helperAuth.Principal{AccountID: u.ID, Role: role, Key: key, DisplayName: username}
}

func tokenFor(t *testing.T, p helperAuth.Principal) string {
	t.Helper()
	tok, _, err := helperAuth.IssueToken(testSecret, p, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	return tok
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test(%s %s) error = %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", req.Method, req.URL.Path, err, raw)
		}
	}
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	app, _ := setupApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	app, _ := setupApp(t)

	code, env := doJSON(t, app, http.MethodGet, "/api/bug-report", "", nil)
	if code != fiber.StatusUnauthorized || env.Success {
		t.Fatalf("no token = %d %+v", code, env)
	}
	code, _ = doJSON(t, app, http.MethodGet, "/api/bug-report", "bukan.token.jwt", nil)
	if code != fiber.StatusUnauthorized {
		t.Fatalf("bad token = %d", code)
	}
	code, _ = doJSON(t, app, http.MethodGet, "/api/bug-categories", "", nil)
	if code != fiber.StatusOK {
		t.Fatalf("public categories = %d", code)
	}
}

func TestLoginLogoutBlacklistsToken(t *testing.T) {
	app, db := setupApp(t)
	createUser(t, db, "warga1", "rahasia123", constants.RoleWarga, "3273010101900001")

	code, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "warga1", "password": "salah-total"})
	if code != fiber.StatusUnauthorized {
		t.Fatalf("wrong password = %d", code)
	}

	code, env := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "warga1", "password": "rahasia123"})
	if code != fiber.StatusOK {
		t.Fatalf("login = %d %+v", code, env)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := sonic.Unmarshal(env.Data, &out); err != nil || out.AccessToken == "" {
		t.Fatalf("login data = %s err=%v", env.Data, err)
	}

	code, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", out.AccessToken, nil)
	if code != fiber.StatusOK {
		t.Fatalf("me = %d", code)
	}
	code, _ = doJSON(t, app, http.MethodPost, "/api/auth/logout", out.AccessToken, nil)
	if code != fiber.StatusOK {
		t.Fatalf("logout = %d", code)
	}
	code, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", out.AccessToken, nil)
	if code != fiber.StatusUnauthorized {
		t.Fatalf("me after logout = %d", code)
	}
}

func TestReportWorkflowOverHTTP(t *testing.T) {
	app, db := setupApp(t)
	warga := tokenFor(t, createUser(t, db, "warga1", "rahasia123", constants.RoleWarga, "3273010101900001"))
	validator := tokenFor(t, createUser(t, db, "rina", "rahasia123", constants.RoleValidator, dbtest.ValidatorV1))
	teknisi := tokenFor(t, createUser(t, db, "andi", "rahasia123", constants.RoleTeknisi, dbtest.TeknisiT1))

	code, env := doJSON(t, app, http.MethodPost, "/api/bug-report", warga, map[string]any{
		"id_bug_category": dbtest.CategoryV1,
		"deskripsi":       "login fails",
	})
	if code != fiber.StatusCreated {
		t.Fatalf("create = %d %+v", code, env)
	}
	var report struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	if err := sonic.Unmarshal(env.Data, &report); err != nil || report.Status != "diajukan" {
		t.Fatalf("report = %s err=%v", env.Data, err)
	}

	code, _ = doJSON(t, app, http.MethodPost, "/api/bug-report", teknisi, map[string]any{
		"id_bug_category": dbtest.CategoryV1,
		"deskripsi":       "bukan pelapor",
	})
	if code != fiber.StatusForbidden {
		t.Fatalf("teknisi create = %d", code)
	}

	reportPath := fmt.Sprintf("/api/bug-report/%d", report.ID)
	code, env = doJSON(t, app, http.MethodPut, reportPath, validator, map[string]any{
		"status":      "diproses",
		"nip_teknisi": dbtest.TeknisiT2,
	})
	if code != fiber.StatusBadRequest || env.ErrorCode == "" {
		t.Fatalf("foreign technician = %d %+v", code, env)
	}

	code, env = doJSON(t, app, http.MethodPut, reportPath, validator, map[string]any{
		"status":      "diproses",
		"nip_teknisi": dbtest.TeknisiT1,
	})
	if code != fiber.StatusOK {
		t.Fatalf("transition = %d %+v", code, env)
	}
	var tr struct {
		Report struct {
			Status string `json:"status"`
		} `json:"report"`
		Assign struct {
			ID uint `json:"id"`
		} `json:"assign"`
		AssignCreated bool `json:"assign_created"`
	}
	if err := sonic.Unmarshal(env.Data, &tr); err != nil || tr.Report.Status != "diproses" || !tr.AssignCreated || tr.Assign.ID == 0 {
		t.Fatalf("transition data = %s err=%v", env.Data, err)
	}

	code, env = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/bug-history/%d", report.ID), teknisi, nil)
	if code != fiber.StatusOK {
		t.Fatalf("history = %d %+v", code, env)
	}
	var timeline []struct {
		Status string `json:"status"`
	}
	if err := sonic.Unmarshal(env.Data, &timeline); err != nil || len(timeline) != 3 || timeline[0].Status != "dibuat" {
		t.Fatalf("timeline = %s err=%v", env.Data, err)
	}

	assignPath := fmt.Sprintf("/api/bug-assign/%d", tr.Assign.ID)
	code, env = doJSON(t, app, http.MethodPut, assignPath, teknisi, map[string]any{"status": "selesai", "catatan_teknisi": "sudah diperbaiki"})
	if code != fiber.StatusOK {
		t.Fatalf("teknisi update = %d %+v", code, env)
	}
	code, env = doJSON(t, app, http.MethodPut, assignPath+"/validasi", validator, map[string]any{"validasi_validator": "disetujui"})
	if code != fiber.StatusOK {
		t.Fatalf("validasi = %d %+v", code, env)
	}

	code, env = doJSON(t, app, http.MethodGet, reportPath, warga, nil)
	if code != fiber.StatusOK {
		t.Fatalf("get = %d", code)
	}
	if err := sonic.Unmarshal(env.Data, &report); err != nil || report.Status != "selesai" {
		t.Fatalf("final report = %s err=%v", env.Data, err)
	}

	code, _ = doJSON(t, app, http.MethodPut, reportPath, validator, map[string]any{"status": "diproses"})
	if code != fiber.StatusConflict {
		t.Fatalf("reopen by validator = %d", code)
	}
}

func TestPhotoUploadOverHTTP(t *testing.T) {
	app, db := setupApp(t)
	warga := tokenFor(t, createUser(t, db, "warga1", "rahasia123", constants.RoleWarga, "3273010101900001"))

	_, env := doJSON(t, app, http.MethodPost, "/api/bug-report", warga, map[string]any{
		"id_bug_category": dbtest.CategoryV1,
		"deskripsi":       "halaman kosong",
	})
	var report struct {
		ID uint `json:"id"`
	}
	if err := sonic.Unmarshal(env.Data, &report); err != nil || report.ID == 0 {
		t.Fatalf("report = %s err=%v", env.Data, err)
	}
	photosPath := fmt.Sprintf("/api/bug-photos/%d", report.ID)

	code, env := doJSON(t, app, http.MethodGet, photosPath, warga, nil)
	if code != fiber.StatusOK || env.Message != "Belum ada foto" || string(env.Data) != "[]" {
		t.Fatalf("empty list = %d %+v", code, env)
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 3, 3))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	code, env = send(t, app, multipartRequest(t, photosPath, warga, map[string][]byte{
		"satu.png": pngBuf.Bytes(),
		"dua.png":  pngBuf.Bytes(),
	}))
	if code != fiber.StatusCreated {
		t.Fatalf("upload = %d %+v", code, env)
	}

	code, env = send(t, app, multipartRequest(t, photosPath, warga, map[string][]byte{
		"palsu.png": []byte("bukan gambar sama sekali"),
	}))
	if code != fiber.StatusBadRequest {
		t.Fatalf("fake png = %d %+v", code, env)
	}

	code, env = doJSON(t, app, http.MethodGet, photosPath, warga, nil)
	var photos []struct {
		ID     uint `json:"id"`
		Posisi int  `json:"posisi"`
	}
	if err := sonic.Unmarshal(env.Data, &photos); err != nil || code != fiber.StatusOK || len(photos) != 2 {
		t.Fatalf("list = %d %s err=%v", code, env.Data, err)
	}
}

func multipartRequest(t *testing.T, path, token string, files map[string][]byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := w.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}
