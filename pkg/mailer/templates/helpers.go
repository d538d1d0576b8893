package templates

import "time"

type Option func(*EmailData)

func WithActionURL(url string) Option { return func(d *EmailData) { d.ActionURL = url } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

// NewEmailData fills the branding fields and applies opts.
func NewEmailData(appName, companyName, name, email string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, AppName: appName, CompanyName: companyName}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
