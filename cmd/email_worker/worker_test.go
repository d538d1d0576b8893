package main

import (
	"context"
	"errors"
	"testing"

	"github.com/oksasatya/devcamper-api/pkg/helpers"
	"github.com/oksasatya/devcamper-api/pkg/mailer"
)

type recordSender struct {
	got []mailer.Message
	err error
}

func (r *recordSender) Send(_ context.Context, msg mailer.Message) error {
	r.got = append(r.got, msg)
	return r.err
}

func TestWorkerHandle(t *testing.T) {
	job := `{"to":"john@example.com","subject":"DevCamper: password reset token","text":"hi","html":"<p>hi</p>"}`
	cases := []struct {
		name string
		body string
		err  error
		want outcome
	}{
		{"delivered", job, nil, ack},
		{"transport failure", job, errors.New("mailgun 503"), requeue},
		{"not json", `{`, nil, drop},
		{"no recipient", `{"subject":"x","text":"y"}`, nil, drop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &recordSender{err: tc.err}
			w := &worker{Sender: s, Logger: helpers.NewNopLogger()}
			if got := w.handle(context.Background(), []byte(tc.body)); got != tc.want {
				t.Fatalf("outcome = %d, want %d", got, tc.want)
			}
			if tc.want == ack && (len(s.got) != 1 || s.got[0].HTML != "<p>hi</p>") {
				t.Errorf("sent = %+v", s.got)
			}
		})
	}
}
