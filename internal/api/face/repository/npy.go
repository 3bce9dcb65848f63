package faceRepository

import (
	"FaceVerify/internal/entity"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"
)

const npyExt = ".npy"

var errEmptyEncoding = errors.New("encoding is empty")

func encodeNpy(w io.Writer, enc entity.FaceEncoding) error {
	if len(enc) == 0 {
		return errEmptyEncoding
	}
	return npyio.Write(w, []float64(enc))
}

func decodeNpy(r io.Reader) (entity.FaceEncoding, error) {
	var values []float64
	if err := npyio.Read(r, &values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, errEmptyEncoding
	}
	return entity.FaceEncoding(values), nil
}

func marshalNpy(enc entity.FaceEncoding) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeNpy(&buf, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalNpy(data []byte) (entity.FaceEncoding, error) {
	return decodeNpy(bytes.NewReader(data))
}

func npyName(rollno int64) string {
	return strconv.FormatInt(rollno, 10) + npyExt
}

// rollnoFromNpyName parses "<rollno>.npy".
func rollnoFromNpyName(name string) (int64, error) {
	if !strings.HasSuffix(name, npyExt) {
		return 0, fmt.Errorf("%s is not a %s file", name, npyExt)
	}
	rollno, ok := parseRollno(strings.TrimSuffix(name, npyExt))
	if !ok {
		return 0, fmt.Errorf("%s does not name a rollno", name)
	}
	return rollno, nil
}
