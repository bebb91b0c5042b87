package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"endpage/internal/models"
)

func TestEndPageFlow_CreateNotifiesValidRecipients(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "author@test.com", password)

	page := app.createPage(t, token,
		`{"title":"Goodbye","content":"So long and thanks","tone":"classy","emails":["a@b.com","not-an-email"]}`)

	uuid, _ := page["uuid"].(string)
	if len(uuid) != 36 {
		t.Fatalf("expected a UUID, got %v", page["uuid"])
	}
	if emails := page["emails"].([]interface{}); len(emails) != 1 || emails[0] != "a@b.com" {
		t.Errorf("expected only a@b.com to be kept, got %v", emails)
	}
	if warnings := page["content_warnings"].([]interface{}); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if got := app.Mail.recipients("New End Page: Goodbye"); len(got) != 1 || got[0] != "a@b.com" {
		t.Errorf("expected one notification to a@b.com, got %v", got)
	}
}

func TestEndPageFlow_FlaggedContentCostsOneAttempt(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "rude@test.com", password)

	page := app.createPage(t, token, `{"title":"Bye","content":"you are an idiot","tone":"honest"}`)

	warnings := page["content_warnings"].([]interface{})
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	w := warnings[0].(map[string]interface{})
	if w["type"] != "profanity" || w["word"] != "idiot" {
		t.Errorf("unexpected warning %v", w)
	}
	if page["attempts_left"] != float64(2) {
		t.Errorf("expected attempts_left 2, got %v", page["attempts_left"])
	}

	profile := parseJSON(t, app.request("GET", "/api/profile", "", token))
	if profile["attempts_left"] != float64(2) {
		t.Errorf("expected profile to show 2 attempts, got %v", profile["attempts_left"])
	}
}

func TestEndPageFlow_LastAttemptRefusesPage(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "worst@test.com", password)
	flagged := `{"title":"Bye","content":"idiot","tone":"honest"}`

	app.createPage(t, token, flagged)
	app.createPage(t, token, flagged)

	rec := app.request("POST", "/api/end_pages", flagged, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if errorCode(result) != "ATTEMPTS_EXHAUSTED" || result["attempts_left"] != float64(0) || result["is_active"] != false {
		t.Errorf("unexpected body: %v", result)
	}

	list := parseJSON(t, app.request("GET", "/api/end_pages", "", ""))
	if list["total_items"] != float64(2) {
		t.Errorf("expected the refused page not to be stored, got %v pages", list["total_items"])
	}

	rec = app.request("POST", "/api/end_pages", `{"title":"Bye","content":"clean","tone":"honest"}`, token)
	if rec.Code != http.StatusUnauthorized || errorCode(parseJSON(t, rec)) != "ACCOUNT_DEACTIVATED" {
		t.Errorf("expected ACCOUNT_DEACTIVATED, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestEndPageFlow_ValidationErrors(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "validate@test.com", password)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"unknown tone", `{"title":"Bye","content":"x","tone":"furious"}`, "INVALID_TONE"},
		{"missing content", `{"title":"Bye","tone":"classy"}`, "INVALID_INPUT"},
		{"title too long", `{"title":"` + strings.Repeat("a", 256) + `","content":"x","tone":"classy"}`, "INVALID_INPUT"},
		{"bad background type", `{"title":"Bye","content":"x","tone":"classy","background_type":"laser"}`, "INVALID_INPUT"},
		{"color without hex", `{"title":"Bye","content":"x","tone":"classy","background_type":"color","background_value":"red"}`, "INVALID_INPUT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.request("POST", "/api/end_pages", tc.body, token)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if code := errorCode(parseJSON(t, rec)); code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, code)
			}
		})
	}

	if rec := app.request("POST", "/api/end_pages", `{"title":"Bye","content":"x","tone":"classy"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestEndPageFlow_PrivacyRule(t *testing.T) {
	app := setupApp(t)
	ownerToken, ownerID := app.registerUser(t, "owner@test.com", password)
	strangerToken, _ := app.registerUser(t, "stranger@test.com", password)

	page := app.createPage(t, ownerToken, `{"title":"Secret","content":"shh","tone":"touching","is_private":true}`)
	path := "/api/end_pages/" + page["uuid"].(string)

	if rec := app.request("GET", path, "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}
	if rec := app.request("GET", path, "", "not-a-token"); rec.Code != http.StatusUnauthorized {
		t.Errorf("invalid token: expected 401, got %d", rec.Code)
	}
	if rec := app.request("GET", path, "", strangerToken); rec.Code != http.StatusForbidden {
		t.Errorf("stranger: expected 403, got %d", rec.Code)
	}
	rec := app.request("GET", path, "", ownerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner: expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["title"] != "Secret" {
		t.Error("expected the page body")
	}

	if rec := app.request("GET", path+"/comments", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("comments anonymous: expected 401, got %d", rec.Code)
	}

	list := parseJSON(t, app.request("GET", "/api/end_pages", "", ""))
	if list["total_items"] != float64(0) {
		t.Errorf("private page must not be listed publicly, got %v", list["total_items"])
	}

	userPages := fmt.Sprintf("/api/users/%d/end_pages", int(ownerID))
	if n := len(parseJSONArray(t, app.request("GET", userPages, "", ""))); n != 0 {
		t.Errorf("anonymous should see 0 of the owner's pages, got %d", n)
	}
	if n := len(parseJSONArray(t, app.request("GET", userPages, "", ownerToken))); n != 1 {
		t.Errorf("owner should see 1 page, got %d", n)
	}
	if rec := app.request("GET", "/api/users/99999/end_pages", "", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown user: expected 404, got %d", rec.Code)
	}

	if rec := app.request("GET", "/share/"+page["uuid"].(string), "", ""); rec.Code != http.StatusNotFound {
		t.Errorf("share of private page: expected 404, got %d", rec.Code)
	}
}

func TestEndPageFlow_UUIDErrors(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/end_pages/not-a-uuid", "", "")
	if rec.Code != http.StatusBadRequest || errorCode(parseJSON(t, rec)) != "INVALID_UUID" {
		t.Errorf("malformed: expected 400 INVALID_UUID, got %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/end_pages/0190c7a4-5e1b-7c3d-8f00-0123456789ab", "", "")
	if rec.Code != http.StatusNotFound || errorCode(parseJSON(t, rec)) != "END_PAGE_NOT_FOUND" {
		t.Errorf("unknown: expected 404 END_PAGE_NOT_FOUND, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestEndPageFlow_Ratings(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "rated@test.com", password)
	page := app.createPage(t, token, `{"title":"Rate me","content":"please","tone":"absurd"}`)
	path := "/api/end_pages/" + page["uuid"].(string) + "/rating"

	var summary map[string]interface{}
	for _, r := range []string{`5`, `"4"`, `3.9`, `1`} {
		rec := app.request("PUT", path, `{"rating":`+r+`}`, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("rating %s: expected 200, got %d: %s", r, rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["message"] != "Rating added successfully" {
			t.Errorf("unexpected message %v", result["message"])
		}
		summary = result["endPage"].(map[string]interface{})
	}
	// 5 + 4 + 3 + 1 over 4 votes
	if summary["totalRating"] != float64(13) || summary["numberOfVotes"] != float64(4) || summary["averageRating"] != 3.25 {
		t.Errorf("unexpected totals: %v", summary)
	}

	for _, bad := range []string{`0`, `6`, `5.9`, `0.5`, `"abc"`, `null`} {
		rec := app.request("PUT", path, `{"rating":`+bad+`}`, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("rating %s: expected 400, got %d", bad, rec.Code)
		}
	}

	got := parseJSON(t, app.request("GET", "/api/end_pages/"+page["uuid"].(string), "", ""))
	if got["total_rating"] != float64(13) || got["number_of_votes"] != float64(4) {
		t.Errorf("rejected ratings must not change totals: %v", got)
	}
}

func TestEndPageFlow_ConcurrentRatings(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "popular@test.com", password)
	page := app.createPage(t, token, `{"title":"Popular","content":"vote","tone":"dramatic"}`)
	path := "/api/end_pages/" + page["uuid"].(string) + "/rating"

	const votes = 20
	var wg sync.WaitGroup
	for i := 0; i < votes; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			req := httptest.NewRequest("PUT", path, strings.NewReader(fmt.Sprintf(`{"rating":%d}`, rating)))
			req.Header.Set("Content-Type", "application/json")
			app.Router.ServeHTTP(httptest.NewRecorder(), req)
		}(i%5 + 1)
	}
	wg.Wait()

	got := parseJSON(t, app.request("GET", "/api/end_pages/"+page["uuid"].(string), "", ""))
	// each of 1..5 four times
	if got["number_of_votes"] != float64(votes) || got["total_rating"] != float64(60) || got["average_rating"] != 3.0 {
		t.Errorf("lost updates: %v", got)
	}
}

func TestEndPageFlow_Comments(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "commented@test.com", password)
	page := app.createPage(t, token, `{"title":"Talk","content":"to me","tone":"ironic"}`)
	uuid := page["uuid"].(string)

	for _, body := range []string{
		`{"author":"first","text":"one","end_page":"` + uuid + `"}`,
		`{"author":"second","text":"two","end_page":"/api/end_pages/` + uuid + `"}`,
	} {
		if rec := app.request("POST", "/api/comments", body, ""); rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := app.request("POST", "/api/comments", `{"author":"x","text":"y","end_page":"0190c7a4-5e1b-7c3d-8f00-0123456789ab"}`, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown page: expected 404, got %d", rec.Code)
	}

	comments := parseJSONArray(t, app.request("GET", "/api/end_pages/"+uuid+"/comments", "", ""))
	if len(comments) != 2 || comments[0].(map[string]interface{})["author"] != "second" {
		t.Errorf("expected newest first, got %v", comments)
	}

	embedded := parseJSON(t, app.request("GET", "/api/end_pages/"+uuid, "", ""))["comments"].([]interface{})
	if len(embedded) != 2 || embedded[0].(map[string]interface{})["text"] != "two" {
		t.Errorf("expected embedded comments newest first, got %v", embedded)
	}
}

func TestEndPageFlow_CommentOnPrivatePage(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t, "quiet@test.com", password)
	strangerToken, _ := app.registerUser(t, "nosy@test.com", password)
	page := app.createPage(t, ownerToken, `{"title":"Secret","content":"shh","tone":"touching","is_private":true}`)
	uuid := page["uuid"].(string)
	body := `{"author":"someone","text":"hello","end_page":"` + uuid + `"}`

	rec := app.request("POST", "/api/comments", body, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}
	if code := errorCode(parseJSON(t, rec)); code != "UNAUTHORIZED" {
		t.Errorf("anonymous: expected UNAUTHORIZED, got %q", code)
	}

	rec = app.request("POST", "/api/comments", body, strangerToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("stranger: expected 403, got %d", rec.Code)
	}
	if code := errorCode(parseJSON(t, rec)); code != "FORBIDDEN" {
		t.Errorf("stranger: expected FORBIDDEN, got %q", code)
	}

	if rec := app.request("POST", "/api/comments", body, ownerToken); rec.Code != http.StatusCreated {
		t.Fatalf("owner: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var count int64
	app.DB.Model(&models.Comment{}).Count(&count)
	if count != 1 {
		t.Errorf("expected only the owner's comment to be stored, got %d", count)
	}
}

func TestEndPageFlow_Delete(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t, "deleter@test.com", password)
	strangerToken, _ := app.registerUser(t, "bystander@test.com", password)
	page := app.createPage(t, ownerToken, `{"title":"Temporary","content":"soon gone","tone":"ultra-cringe"}`)
	path := "/api/end_pages/" + page["uuid"].(string)

	app.request("POST", "/api/comments", `{"author":"a","text":"b","end_page":"`+page["uuid"].(string)+`"}`, "")

	if rec := app.request("DELETE", path, "", strangerToken); rec.Code != http.StatusForbidden {
		t.Fatalf("stranger: expected 403, got %d", rec.Code)
	}
	if rec := app.request("DELETE", path, "", ownerToken); rec.Code != http.StatusNoContent {
		t.Fatalf("owner: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := app.request("GET", path, "", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestEndPageFlow_SharePage(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "sharer@test.com", password)
	page := app.createPage(t, token, `{"title":"Shared","content":"It was **great**.","tone":"touching"}`)

	rec := app.request("GET", "/share/"+page["uuid"].(string), "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<strong>great</strong>") {
		t.Errorf("expected rendered markdown, got %s", rec.Body.String())
	}
}

func TestEndPageFlow_ModerationPreview(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/moderation/scan", `{"text":"this is clean text"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if w := parseJSON(t, rec)["warnings"].([]interface{}); len(w) != 0 {
		t.Errorf("expected no warnings, got %v", w)
	}
}
