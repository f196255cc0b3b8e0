package contact_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/resilience/retry"
	contactUC "solidarity-api/internal/usecase/contact"
)

type stubRepo struct {
	data    []*entity.ContactSubmission
	nextID  int64
	failN   int // fail this many calls before succeeding
	err     error
	inserts int
}

func newStub() *stubRepo {
	return &stubRepo{nextID: 1}
}

func (s *stubRepo) Insert(_ context.Context, sub *entity.ContactSubmission) (int64, error) {
	s.inserts++
	if s.failN > 0 {
		s.failN--
		return 0, errors.New("connection reset")
	}
	if s.err != nil {
		return 0, s.err
	}
	sub.ID = s.nextID
	s.nextID++
	s.data = append(s.data, sub)
	return sub.ID, nil
}

func fastRetry() retry.Config {
	return retry.Config{
		MaxRetries:     2,
		BaseDelay:      time.Millisecond,
		MaxDelay:       2 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func TestSubmit_Success(t *testing.T) {
	repo := newStub()
	svc := contactUC.NewService(repo)
	svc.Retry = fastRetry()

	id, err := svc.Submit(context.Background(), contactUC.SubmitInput{
		Name:    "Ada Lovelace",
		Email:   "ada@example.org",
		Subject: "Getting involved",
		Message: "I would like to help organize local events.",
		Locale:  "en",
	})
	if err != nil {
		t.Fatalf("Submit err=%v", err)
	}
	if id != 1 {
		t.Errorf("id=%d, want 1", id)
	}
	if repo.data[0].Locale != "en" {
		t.Errorf("locale=%q, want en", repo.data[0].Locale)
	}
}

func TestSubmit_DefaultsLocale(t *testing.T) {
	repo := newStub()
	svc := contactUC.NewService(repo)
	svc.Retry = fastRetry()

	_, err := svc.Submit(context.Background(), contactUC.SubmitInput{
		Name:    "Ada Lovelace",
		Email:   "ada@example.org",
		Subject: "Getting involved",
		Message: "I would like to help organize local events.",
		Locale:  "de",
	})
	if err != nil {
		t.Fatalf("Submit err=%v", err)
	}
	if repo.data[0].Locale != "tr" {
		t.Errorf("locale=%q, want tr fallback", repo.data[0].Locale)
	}
}

func TestSubmit_RetriesTransientFailure(t *testing.T) {
	repo := newStub()
	repo.failN = 2
	svc := contactUC.NewService(repo)
	svc.Retry = fastRetry()

	if _, err := svc.Submit(context.Background(), contactUC.SubmitInput{
		Name: "Ada", Email: "ada@example.org", Subject: "Hello there",
		Message: "A long enough message body.",
	}); err != nil {
		t.Fatalf("Submit err=%v", err)
	}
	if repo.inserts != 3 {
		t.Errorf("inserts=%d, want 3 (two failures then success)", repo.inserts)
	}
}

func TestSubmit_ExhaustsRetries(t *testing.T) {
	repo := newStub()
	repo.failN = 10
	svc := contactUC.NewService(repo)
	svc.Retry = fastRetry()

	_, err := svc.Submit(context.Background(), contactUC.SubmitInput{
		Name: "Ada", Email: "ada@example.org", Subject: "Hello there",
		Message: "A long enough message body.",
	})
	if err == nil {
		t.Fatal("want error after exhausting retries")
	}
	var exhausted *retry.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Errorf("err=%v, want ExhaustedError", err)
	}
	if repo.inserts != 3 {
		t.Errorf("inserts=%d, want 3 total attempts", repo.inserts)
	}
}
