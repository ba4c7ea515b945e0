package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const awaitPollInterval = time.Millisecond * 100

// AwaitService polls url until the service answers with any HTTP response, or until the
// timeout expires. An error status still counts as an answer: the API root is not required
// to have a handler. Progress dots are written to output.
func AwaitService(httpClient *http.Client, url string, timeout time.Duration, output io.Writer) error {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	fmt.Fprintf(output, "Connecting to API at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := httpClient.Get(url)
		if err == nil {
			if resp.Body != nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
			fmt.Fprintf(output, " HTTP %d\n", resp.StatusCode)
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(awaitPollInterval)
	}
}
