package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newInterviewBitServer(t *testing.T, profile, submissions string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/profile/username", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profile)
	})
	mux.HandleFunc("/profile/submissions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, submissions)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestInterviewBitAdapter_Fetch(t *testing.T) {
	srv := newInterviewBitServer(t,
		`{"username":"ib_user","avatar_url":"https://ib/pic.png","global_rank":512,"university_rank":"3"}`,
		`{"total_problems_solved":88}`)

	adapter := &InterviewBitAdapter{Client: srv.Client(), BaseURL: srv.URL}
	stats, err := adapter.Fetch(context.Background(), "ib_user")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if stats.TotalProblemsSolved != 88 {
		t.Errorf("solved = %d, want 88", stats.TotalProblemsSolved)
	}
	if stats.ContestGlobalRank == nil || *stats.ContestGlobalRank != 512 {
		t.Errorf("contestGlobalRank = %v, want 512", stats.ContestGlobalRank)
	}
	if stats.UniversityRank == nil || *stats.UniversityRank != 3 {
		t.Errorf("universityRank = %v, want 3", stats.UniversityRank)
	}
}

func TestInterviewBitAdapter_BlankUniversityRank(t *testing.T) {
	srv := newInterviewBitServer(t,
		`{"username":"ib_user","avatar_url":"","university_rank":""}`,
		`{"total_problems_solved":5}`)

	adapter := &InterviewBitAdapter{Client: srv.Client(), BaseURL: srv.URL}
	stats, err := adapter.Fetch(context.Background(), "ib_user")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if stats.UniversityRank != nil {
		t.Errorf("universityRank should be absent, got %v", *stats.UniversityRank)
	}
	if stats.ContestGlobalRank != nil {
		t.Errorf("contestGlobalRank should be absent, got %v", *stats.ContestGlobalRank)
	}
}

func TestInterviewBitAdapter_UnparsableUniversityRank(t *testing.T) {
	srv := newInterviewBitServer(t,
		`{"username":"ib_user","university_rank":"N/A"}`,
		`{"total_problems_solved":5}`)

	adapter := &InterviewBitAdapter{Client: srv.Client(), BaseURL: srv.URL}
	stats, err := adapter.Fetch(context.Background(), "ib_user")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if stats.UniversityRank != nil {
		t.Errorf("universityRank should be absent for non-numeric value, got %v", *stats.UniversityRank)
	}
}

func TestInterviewBitAdapter_UnknownUser(t *testing.T) {
	srv := newInterviewBitServer(t, `{"username":""}`, `{}`)

	adapter := &InterviewBitAdapter{Client: srv.Client(), BaseURL: srv.URL}
	if _, err := adapter.Fetch(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInterviewBitAdapter_SubmissionsFailureFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/profile/username", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"username":"ib_user"}`)
	})
	mux.HandleFunc("/profile/submissions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	adapter := &InterviewBitAdapter{Client: srv.Client(), BaseURL: srv.URL}
	if _, err := adapter.Fetch(context.Background(), "ib_user"); err == nil {
		t.Fatal("expected error when submissions call fails")
	}
}
