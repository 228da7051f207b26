package seed

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-seeds/model"
)

// ErrParse is returned for malformed seed text
var ErrParse = errors.New("malformed seed")

// stripChars are removed from every line before it is split on the comma
var stripChars = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "", " ", "", "\t", "", "\r", "")

// Encode writes the seed as text: the first line holds [height, width], each
// following line one [row, col] pair in seed order.
func Encode(w io.Writer, s model.Seed) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "[%d, %d]\n", s.Height, s.Width)
	for _, c := range s.Cells {
		fmt.Fprintf(bw, "[%d, %d]\n", c.Row, c.Col)
	}
	return errors.Wrap(bw.Flush(), "[Encode] failed to write seed")
}

// Marshal returns the text encoding of s
func Marshal(s model.Seed) []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, s)
	return buf.Bytes()
}

// Decode reads a seed written by Encode
func Decode(r io.Reader) (model.Seed, error) {
	var (
		s       model.Seed
		scanner = bufio.NewScanner(r)
		lineNo  = 0
	)
	for scanner.Scan() {
		lineNo++
		first, second, err := parsePair(scanner.Text())
		if err != nil {
			return model.Seed{}, errors.Wrapf(err, "[Decode] line %d", lineNo)
		}
		if lineNo == 1 {
			if first <= 0 || second <= 0 {
				return model.Seed{}, errors.Wrapf(ErrParse, "[Decode] line 1: dimensions %dx%d", first, second)
			}
			s.Height, s.Width = first, second
			continue
		}
		if first < 0 || second < 0 {
			return model.Seed{}, errors.Wrapf(ErrParse, "[Decode] line %d: negative coordinate", lineNo)
		}
		s.Cells = append(s.Cells, model.Coordinate{Row: first, Col: second})
	}
	if err := scanner.Err(); err != nil {
		return model.Seed{}, errors.Wrap(err, "[Decode] failed to read seed")
	}
	if lineNo == 0 {
		return model.Seed{}, errors.Wrap(ErrParse, "[Decode] missing dimension header")
	}
	return s, nil
}

// Unmarshal decodes seed text held in memory
func Unmarshal(data []byte) (model.Seed, error) {
	return Decode(bytes.NewReader(data))
}

func parsePair(line string) (int, int, error) {
	fields := strings.Split(stripChars.Replace(line), ",")
	if len(fields) != 2 {
		return 0, 0, errors.Wrapf(ErrParse, "want 2 fields, got %d in %q", len(fields), line)
	}
	first, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errors.Wrapf(ErrParse, "bad integer %q", fields[0])
	}
	second, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Wrapf(ErrParse, "bad integer %q", fields[1])
	}
	return first, second, nil
}
