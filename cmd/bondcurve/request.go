package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/tidwall/gjson"

	"github.com/krazyTry/bondcurve-go/pair/shared"
	"github.com/krazyTry/bondcurve-go/u128"
)

var errInvalidRequest = errors.New("invalid request")

type request struct {
	gjson.Result
}

// readRequest reads the JSON request from path, or stdin when path is "-".
func readRequest(path string, stdin io.Reader) (request, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return request{}, fmt.Errorf("read request: %w", err)
	}
	return parseRequest(data)
}

func parseRequest(data []byte) (request, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return request{}, fmt.Errorf("%w: not valid JSON", errInvalidRequest)
	}
	return request{gjson.ParseBytes(data)}, nil
}

func (r request) amount(key string) (*big.Int, error) {
	v := r.Get(key)
	if !v.Exists() {
		return nil, fmt.Errorf("%w: %s is required", errInvalidRequest, key)
	}
	out, err := u128.ParseBig(v.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errInvalidRequest, key, err)
	}
	return out, nil
}

// optionalAmount returns nil when key is absent.
func (r request) optionalAmount(key string) (*big.Int, error) {
	if !r.Get(key).Exists() {
		return nil, nil
	}
	return r.amount(key)
}

func (r request) uintOr(key string, def uint64) uint64 {
	v := r.Get(key)
	if !v.Exists() {
		return def
	}
	return v.Uint()
}

func (r request) claims(key string) (shared.Claims, error) {
	obj := request{r.Get(key)}
	if !obj.IsObject() {
		return shared.Claims{}, fmt.Errorf("%w: %s must be an object", errInvalidRequest, key)
	}
	out := shared.ZeroClaims()
	for name, dst := range map[string]**big.Int{
		"bondPrincipal":      &out.BondPrincipal,
		"bondInterest":       &out.BondInterest,
		"insurancePrincipal": &out.InsurancePrincipal,
		"insuranceInterest":  &out.InsuranceInterest,
	} {
		v, err := obj.optionalAmount(name)
		if err != nil {
			return shared.Claims{}, err
		}
		if v != nil {
			*dst = v
		}
	}
	return out, nil
}
