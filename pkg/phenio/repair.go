package phenio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Repair streams the OWL file and removes known-bad empty annotation lines
// in place, returning how many lines were dropped. Only whole lines whose
// trimmed content exactly matches a known bad element are removed, so no
// node or edge content is lost.
func Repair(path string) (int, error) {
	in, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}

	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		in.Close()
		return 0, fmt.Errorf("creating %s: %w", tmp, err)
	}

	removed, err := repairStream(in, out)
	in.Close()
	if err != nil {
		out.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("repairing %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return 0, err
	}

	if err := os.Rename(tmp, path); err != nil {
		return 0, fmt.Errorf("replacing %s: %w", path, err)
	}

	return removed, nil
}

func repairStream(r io.Reader, w io.Writer) (int, error) {
	bad := make(map[string]struct{}, len(offendingLines))
	for _, line := range offendingLines {
		bad[line] = struct{}{}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	bw := bufio.NewWriter(w)

	removed := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if _, ok := bad[strings.TrimSpace(line)]; ok {
			removed++
			log.Debug().Int("line", lineNum).Str("content", strings.TrimSpace(line)).Msg("dropping bad annotation")
			continue
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return removed, err
		}
	}
	if err := scanner.Err(); err != nil {
		return removed, err
	}

	return removed, bw.Flush()
}
