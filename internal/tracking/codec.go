package tracking

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode writes records with Core Deterministic Encoding so the same sample
// always produces identical bytes. Times keep nanosecond precision.
var encMode cbor.EncMode

// decMode ignores unknown fields so older stores stay readable.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("tracking: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("tracking: CBOR decoder initialization failed: " + err.Error())
	}
}

func marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func newDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
