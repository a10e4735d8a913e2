package service

import "github.com/Badsnus/qr-studio/internal/domain/entity"

// Change says how much work an edit needs.
type Change int

const (
	// ChangeLight is satisfied by the surface display transform alone.
	ChangeLight Change = iota
	// ChangeHeavy needs a full engine re-render.
	ChangeHeavy
)

func (c Change) String() string {
	if c == ChangeHeavy {
		return "heavy"
	}
	return "light"
}

// Classify compares the next state with the last rendered snapshot.
// Border radius and the preview/export sizes are light, everything that
// changes engine output is heavy.
func Classify(prev *entity.Snapshot, next entity.Configuration, logo *entity.Logo, payload string) Change {
	if prev == nil {
		return ChangeHeavy
	}
	next = next.Resolve(logo != nil)
	cur := prev.Config

	switch {
	case cur.Margin != next.Margin,
		cur.DotColor != next.DotColor,
		cur.CornerColor != next.CornerColor,
		cur.BgColor != next.BgColor,
		cur.DotStyle != next.DotStyle,
		cur.CornerStyle != next.CornerStyle,
		cur.UseGradient != next.UseGradient,
		cur.GradientType != next.GradientType,
		cur.GradientColor2 != next.GradientColor2,
		cur.ErrorCorrectionLevel != next.ErrorCorrectionLevel:
		return ChangeHeavy
	}
	if prev.Logo != logo.Fingerprint() || prev.Payload != previewPayload(payload) {
		return ChangeHeavy
	}
	return ChangeLight
}

func previewPayload(payload string) string {
	if payload == "" {
		return entity.PlaceholderPayload
	}
	return payload
}
