package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fogleman/gg"
	"github.com/go-resty/resty/v2"
	"github.com/nfnt/resize"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

const (
	// MaxLogoSide bounds both logo dimensions after normalization.
	MaxLogoSide = 150
	// MaxLogoBytes bounds uploaded and downloaded logo sources.
	MaxLogoBytes = 10 << 20
	// MaxLogoSourceSide bounds both dimensions of a source image; larger
	// images are rejected before their pixels are decoded.
	MaxLogoSourceSide = 4096
)

// LogoLoader turns user supplied images into normalized logos: downscaled
// to fit MaxLogoSide, flattened on white and re-encoded as PNG.
//
// Remote logos are only fetched over http(s) from public addresses; the
// check runs on every dialed address, redirects included.
type LogoLoader struct {
	client *resty.Client
	logger *types.Logger

	allowPrivate bool
}

func NewLogoLoader(client *resty.Client, logger *types.Logger) *LogoLoader {
	if client == nil {
		client = resty.New()
	}
	l := &LogoLoader{client: client, logger: logger}

	dialer := &net.Dialer{Timeout: 10 * time.Second, Control: l.checkAddress}
	client.SetTransport(&http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	})
	return l
}

// FromBytes normalizes raw image bytes.
func (l *LogoLoader) FromBytes(name string, data []byte) (*entity.Logo, error) {
	if len(data) > MaxLogoBytes {
		return nil, fmt.Errorf("%w: %d bytes", errorz.ErrLogoTooLarge, len(data))
	}
	if mime := http.DetectContentType(data); !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: detected %s", errorz.ErrNotImage, mime)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errorz.ErrLogoDecode, err)
	}
	if cfg.Width > MaxLogoSourceSide || cfg.Height > MaxLogoSourceSide {
		return nil, fmt.Errorf("%w: %dx%d", errorz.ErrLogoTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errorz.ErrLogoDecode, err)
	}

	scaled := resize.Thumbnail(MaxLogoSide, MaxLogoSide, img, resize.Lanczos3)
	b := scaled.Bounds()

	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(scaled, -b.Min.X, -b.Min.Y)

	var buf bytes.Buffer
	if err = png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return &entity.Logo{Data: buf.Bytes(), MIME: "image/png", Name: name}, nil
}

// FromFile reads and normalizes a logo from disk.
func (l *LogoLoader) FromFile(path string) (*entity.Logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	return l.FromBytes(filepath.Base(path), data)
}

// FromURL downloads and normalizes a logo.
func (l *LogoLoader) FromURL(ctx context.Context, rawURL string) (*entity.Logo, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q", errorz.ErrLogoURL, rawURL)
	}

	resp, err := l.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("fetch logo: unexpected status %s", resp.Status())
	}
	if resp.RawResponse.ContentLength > MaxLogoBytes {
		return nil, fmt.Errorf("%w: %d bytes", errorz.ErrLogoTooLarge, resp.RawResponse.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}
	l.logger.Debugf("(logo) fetched %d bytes from %s", len(data), u.Host)
	return l.FromBytes(filepath.Base(u.Path), data)
}

// checkAddress refuses connections to loopback, private, link-local and
// unspecified addresses.
func (l *LogoLoader) checkAddress(_, address string, _ syscall.RawConn) error {
	if l.allowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %v", errorz.ErrLogoURL, err)
	}
	ip := net.ParseIP(host)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsMulticast() {
		return fmt.Errorf("%w: %s is not a public address", errorz.ErrLogoURL, host)
	}
	return nil
}
