package speedtest

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Metric is one KEY=VALUE line of the metrics block.
type Metric struct {
	Key   string
	Value string
}

// Metrics returns the machine-readable metrics for r in emission order.
func Metrics(r *Result) []Metric {
	ms := []Metric{
		{"SPEEDTEST_DOWNLOAD_MBPS", formatFloat(r.DownloadMbps())},
		{"SPEEDTEST_UPLOAD_MBPS", formatFloat(r.UploadMbps())},
		{"SPEEDTEST_PING_MS", formatFloat(round2(r.PingLatency))},
		{"SPEEDTEST_JITTER_MS", formatFloat(round2(r.PingJitter))},
	}
	if r.HasPacketLoss {
		ms = append(ms, Metric{"SPEEDTEST_PACKET_LOSS", formatFloat(round2(r.PacketLoss))})
	}
	if r.ServerID > 0 {
		ms = append(ms, Metric{"SPEEDTEST_SERVER_ID", strconv.FormatInt(r.ServerID, 10)})
	}
	return append(ms, Metric{"SPEEDTEST_STATUS", "OK"})
}

// Report writes the human-readable block followed by the metrics block.
func Report(w io.Writer, r *Result) error {
	var b strings.Builder

	b.WriteString("===== Speedtest Result =====\n")
	fmt.Fprintf(&b, "Download:    %s Mbps\n", formatFloat(r.DownloadMbps()))
	fmt.Fprintf(&b, "Upload:      %s Mbps\n", formatFloat(r.UploadMbps()))
	fmt.Fprintf(&b, "Ping:        %s ms (jitter %s ms)\n", formatFloat(round2(r.PingLatency)), formatFloat(round2(r.PingJitter)))
	if r.HasPacketLoss {
		fmt.Fprintf(&b, "Packet loss: %s %%\n", formatFloat(round2(r.PacketLoss)))
	}
	if r.ISP != "" {
		fmt.Fprintf(&b, "ISP:         %s\n", r.ISP)
	}
	if r.ServerName != "" {
		fmt.Fprintf(&b, "Server:      %s (%s) [id %d]\n", r.ServerName, r.ServerLocation, r.ServerID)
	}
	if r.ResultURL != "" {
		fmt.Fprintf(&b, "Result URL:  %s\n", r.ResultURL)
	}
	if r.Timestamp != "" {
		fmt.Fprintf(&b, "Measured at: %s\n", r.Timestamp)
	}
	b.WriteString("============================\n")

	for _, m := range Metrics(r) {
		fmt.Fprintf(&b, "%s=%s\n", m.Key, m.Value)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
