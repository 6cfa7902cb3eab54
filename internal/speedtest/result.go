package speedtest

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// Result is a parsed speed test measurement. Bandwidths are bits per second
// as reported by the CLI.
type Result struct {
	DownloadBandwidth int64
	UploadBandwidth   int64
	PingLatency       float64
	PingJitter        float64
	PacketLoss        float64
	HasPacketLoss     bool
	ISP               string
	ExternalIP        string
	ServerID          int64
	ServerName        string
	ServerLocation    string
	ResultURL         string
	Timestamp         string
}

// DownloadMbps returns the download rate in megabits per second.
func (r *Result) DownloadMbps() float64 { return ToMbps(r.DownloadBandwidth) }

// UploadMbps returns the upload rate in megabits per second.
func (r *Result) UploadMbps() float64 { return ToMbps(r.UploadBandwidth) }

// ToMbps converts a bandwidth in bits per second to megabits per second,
// rounded to two decimals.
func ToMbps(bw int64) float64 {
	return math.Round(float64(bw)/125000*100) / 100
}

// Parse decodes the CLI's JSON output. The CLI may interleave log records with
// the result; the line typed "result" wins, otherwise the last JSON object.
func Parse(out []byte) (*Result, error) {
	doc := pickResult(out)
	if doc == "" {
		return nil, fmt.Errorf("%w: no JSON object in output", ErrOutputParseFailed)
	}

	if errMsg := gjson.Get(doc, "error"); errMsg.Exists() && !gjson.Get(doc, "download").Exists() {
		return nil, fmt.Errorf("%w: %s", ErrOutputParseFailed, errMsg.String())
	}

	down, err := requireBandwidth(doc, "download.bandwidth")
	if err != nil {
		return nil, err
	}
	up, err := requireBandwidth(doc, "upload.bandwidth")
	if err != nil {
		return nil, err
	}

	res := &Result{
		DownloadBandwidth: down,
		UploadBandwidth:   up,
		PingLatency:       gjson.Get(doc, "ping.latency").Float(),
		PingJitter:        gjson.Get(doc, "ping.jitter").Float(),
		ISP:               gjson.Get(doc, "isp").String(),
		ExternalIP:        gjson.Get(doc, "interface.externalIp").String(),
		ServerID:          gjson.Get(doc, "server.id").Int(),
		ServerName:        gjson.Get(doc, "server.name").String(),
		ServerLocation:    gjson.Get(doc, "server.location").String(),
		ResultURL:         gjson.Get(doc, "result.url").String(),
		Timestamp:         gjson.Get(doc, "timestamp").String(),
	}
	if pl := gjson.Get(doc, "packetLoss"); pl.Exists() {
		res.PacketLoss = pl.Float()
		res.HasPacketLoss = true
	}
	return res, nil
}

func requireBandwidth(doc, path string) (int64, error) {
	v := gjson.Get(doc, path)
	if !v.Exists() {
		return 0, fmt.Errorf("%w: missing %s", ErrOutputParseFailed, path)
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s is not a number: %s", ErrOutputParseFailed, path, v.Raw)
	}
	if v.Int() < 0 {
		return 0, fmt.Errorf("%w: negative %s", ErrOutputParseFailed, path)
	}
	return v.Int(), nil
}

func pickResult(out []byte) string {
	var last string
	for _, line := range bytes.Split(out, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] != '{' || !gjson.ValidBytes(line) {
			continue
		}
		s := string(line)
		if gjson.Get(s, "type").String() == "result" {
			return s
		}
		last = s
	}
	if last == "" {
		// Pretty-printed output spans several lines.
		trimmed := bytes.TrimSpace(out)
		if gjson.ValidBytes(trimmed) && gjson.ParseBytes(trimmed).IsObject() {
			return string(trimmed)
		}
	}
	return last
}
