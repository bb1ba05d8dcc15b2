package console

import (
	"fmt"
	"io"
	"sort"

	"bacbo-live-client/internal/display"
	"bacbo-live-client/internal/models"
)

func banner(out io.Writer, baseURL string) {
	fmt.Fprintln(out, "BacBo live round client")
	fmt.Fprintf(out, "Analyzer: %s\n", baseURL)
	fmt.Fprintln(out, "Enter p, b, t or any result. Type /help for commands.")
}

func help(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  <result>              Submit a round (p=PLAYER, b=BANKER, t=TIE)")
	fmt.Fprintln(out, "  /async <result>       Submit without waiting")
	fmt.Fprintln(out, "  /panel                Show the current panel")
	fmt.Fprintln(out, "  /history [limit]      Show submitted rounds")
	fmt.Fprintln(out, "  /tally                Count submitted results")
	fmt.Fprintln(out, "  /exit | /quit         Exit")
}

func panel(out io.Writer, texts map[string]string) {
	if len(texts) == 0 {
		fmt.Fprintln(out, "panel is empty")
		return
	}
	for _, id := range display.Elements {
		if text, ok := texts[id]; ok {
			fmt.Fprintf(out, "  %-10s %s\n", id, text)
		}
	}
}

func history(out io.Writer, records []*models.RoundRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, "no rounds")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s [%d] %s -> %s | %s | G %s R %s\n",
			rec.AppliedAt.Format("15:04:05"),
			rec.StatusCode,
			rec.Result,
			rec.Texts[display.ElementSignal],
			rec.Texts[display.ElementConfidence],
			rec.Texts[display.ElementGreens],
			rec.Texts[display.ElementReds],
		)
	}
}

func tally(out io.Writer, counts map[models.Result]int) {
	if len(counts) == 0 {
		fmt.Fprintln(out, "no rounds")
		return
	}
	keys := make([]string, 0, len(counts))
	for r := range counts {
		keys = append(keys, string(r))
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %d\n", k, counts[models.Result(k)])
	}
}

func info(out io.Writer, msg string) {
	fmt.Fprintln(out, msg)
}

func printError(out io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(out, "error: %v\n", err)
}
