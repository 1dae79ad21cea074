package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

// dumps are for eyeballing portal responses, not archival, so
// oversized bodies get cut off
const maxDumpBody = 256 << 10

func writeHeaders(out *strings.Builder, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	// stable order so dumps from two runs diff cleanly
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
	}
}

func writeBody(out *strings.Builder, body string) {
	if len(body) <= maxDumpBody {
		out.WriteString(body)
		return
	}
	out.WriteString(body[:maxDumpBody])
	fmt.Fprintf(out, "\n... truncated %d bytes ...", len(body)-maxDumpBody)
}

func requestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	readBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(readBody)
}

func formatExchange(res *resty.Response) string {
	var out strings.Builder

	fmt.Fprintf(&out, "---- REQUEST ----\n\n%s %s\n\n", res.Request.Method, res.Request.URL)
	writeHeaders(&out, res.Request.RawRequest.Header)
	out.WriteString("\n")
	writeBody(&out, requestBody(res.Request.RawRequest))

	finalUrl := res.Request.URL
	redirected, err := res.RawResponse.Location()
	if err == nil {
		finalUrl = redirected.String()
	}

	fmt.Fprintf(&out, "\n\n---- RESPONSE ----\n\n%d %s\n\n", res.StatusCode(), finalUrl)
	writeHeaders(&out, res.Header())
	out.WriteString("\n")
	writeBody(&out, res.String())

	return out.String()
}
