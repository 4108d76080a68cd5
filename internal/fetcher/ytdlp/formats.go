package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ProbeResult summarizes the formats yt-dlp reports for an identifier.
// It is ephemeral: consumed once to compute a format policy, never
// persisted.
type ProbeResult struct {
	// Codec is the codec family of the best available video stream,
	// e.g. "vp9", "av01", "avc1".
	Codec string
	// BestHeight is the height of the best available video stream.
	BestHeight int
	// Throttled reports that the best available stream is a codec or
	// container combination known to be served at degraded rates.
	Throttled bool
	// CompatAvailable reports that a broadly compatible mp4 stream at
	// 1080p or below exists as a downgrade target.
	CompatAvailable bool
}

type probeFormat struct {
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
	Height   int    `json:"height"`
	VCodec   string `json:"vcodec"`
}

// Format IDs YouTube serves at heavily degraded transfer rates.
var throttledFormatIDs = map[string]struct{}{
	"313": {},
	"248": {},
}

// Probe runs `yt-dlp -J` and classifies the available formats.
func (c *CLI) Probe(ctx context.Context, url string) (ProbeResult, error) {
	if strings.TrimSpace(url) == "" {
		return ProbeResult{}, fmt.Errorf("url required")
	}
	cmd := commandContext(ctx, c.binary, "-J", url) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return ProbeResult{}, ctx.Err()
		}
		return ProbeResult{}, fmt.Errorf("yt-dlp -J: %w", err)
	}

	var payload struct {
		Formats []probeFormat `json:"formats"`
	}
	if err := json.Unmarshal(output, &payload); err != nil {
		return ProbeResult{}, fmt.Errorf("decode formats: %w", err)
	}
	if len(payload.Formats) == 0 {
		return ProbeResult{}, fmt.Errorf("no formats reported")
	}
	return classifyFormats(payload.Formats), nil
}

func classifyFormats(formats []probeFormat) ProbeResult {
	var result ProbeResult
	for _, f := range formats {
		family := codecFamily(f.VCodec)
		if family == "" {
			continue // audio-only entries
		}
		if f.Height > result.BestHeight {
			result.BestHeight = f.Height
			result.Codec = family
		}
		if _, known := throttledFormatIDs[f.FormatID]; known {
			result.Throttled = true
		}
		if f.Ext == "mp4" && f.Height > 0 && f.Height <= 1080 && !throttledFamily(family) {
			result.CompatAvailable = true
		}
	}
	// High-resolution VP9/AV1 is the reference throttled case even when
	// no known format ID matched.
	if throttledFamily(result.Codec) && result.BestHeight > 1080 {
		result.Throttled = true
	}
	return result
}

func codecFamily(vcodec string) string {
	vcodec = strings.ToLower(strings.TrimSpace(vcodec))
	if vcodec == "" || vcodec == "none" {
		return ""
	}
	if idx := strings.IndexByte(vcodec, '.'); idx > 0 {
		vcodec = vcodec[:idx]
	}
	if vcodec == "vp09" {
		vcodec = "vp9"
	}
	return vcodec
}

func throttledFamily(family string) bool {
	return family == "vp9" || family == "av01"
}
