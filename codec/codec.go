package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

func Decode[T any](bz []byte) (T, error) {
	value := new(T)
	err := json.Unmarshal(bz, value)
	if err != nil {
		return *value, eris.Wrap(err, "")
	}
	return *value, nil
}

func Encode(value any) ([]byte, error) {
	bz, err := json.Marshal(value)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}

func EncodeIndent(value any) ([]byte, error) {
	bz, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}
