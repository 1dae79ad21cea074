package unipa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"

	"syllabus-scraper/lib/restyutil"
)

// Prober checks that the portal answers plain https before a browser
// session is spent on it. A dead portal fails here in seconds instead of
// through minutes of element timeouts.
type Prober struct {
	http *resty.Client
	url  string
}

func NewProber(loginURL string) (*Prober, error) {
	base, err := url.Parse(loginURL)
	if err != nil {
		return nil, fmt.Errorf("invalid login url: %w", err)
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(base.Hostname()))
	client.SetTimeout(time.Second * 30)

	return &Prober{http: client, url: loginURL}, nil
}

// SetInstrumentOutput traces every probe request and mirrors the raw
// exchange to out. Call at most once, before Probe.
func (p *Prober) SetInstrumentOutput(out restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(p.http, tracer, out)
}

// Probe fetches the login page once. Server errors and empty bodies both
// mean the portal is down or the edge is challenging us.
func (p *Prober) Probe(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "unipa:Probe")
	defer span.End()

	err := p.probe(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to probe portal")
		return err
	}
	return nil
}

func (p *Prober) probe(ctx context.Context) error {
	res, err := p.http.R().SetContext(ctx).Get(p.url)
	if err != nil {
		return fmt.Errorf("portal unreachable: %w", err)
	}
	if res.StatusCode() >= 500 {
		return fmt.Errorf("portal returned %s", res.Status())
	}
	if len(res.Body()) == 0 {
		return errors.New("portal returned an empty login page")
	}
	slog.Info("portal reachable", "status", res.Status(), "bytes", len(res.Body()))
	return nil
}
