// Package errcodes maps backend response codes to user-facing messages.
//
// The backend shares one code space across endpoints, but a code can mean
// different things per endpoint: 0404 is a wrong login on LOGIN and an
// unknown company on REGISTER_EMPLOYER.
package errcodes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Code is a 4-digit backend outcome code
type Code string

const (
	Success               Code = "0200"
	BadRequest            Code = "0400"
	NotFound              Code = "0404"
	UserAlreadyRegistered Code = "0410"
	IncorrectDataLength   Code = "0411"
	InternalError         Code = "0500"
	ConnectionError       Code = "0600"
)

// UnmarshalJSON accepts both "0200" and 200.
func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}

	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid response code %s: %w", data, err)
	}
	*c = Code(fmt.Sprintf("%04d", n))
	return nil
}

// Endpoint names a backend operation in the message table
type Endpoint string

const (
	Login             Endpoint = "LOGIN"
	RegisterCandidate Endpoint = "REGISTER_CANDIDATE"
	RegisterEmployer  Endpoint = "REGISTER_EMPLOYER"
	GetCompanies      Endpoint = "GET_COMPANIES"
	GetSkills         Endpoint = "GET_SKILLS"
	GetAvailableJobs  Endpoint = "GET_AVAILABLE_JOBS"
	GetLocations      Endpoint = "GET_LOCATIONS"
)

// IsSuccess reports whether code is the success code
func IsSuccess(code Code) bool {
	return code == Success
}

// ResolveMessage returns the endpoint-specific message for code, falling back
// to the server description and then to the generic default.
func ResolveMessage(endpoint Endpoint, code Code, description string) string {
	if msg, ok := endpointMessages[endpoint][code]; ok {
		return msg
	}
	if description != "" {
		return description
	}
	return MsgDefault
}

// SuccessMessage returns the confirmation shown after a successful call
func SuccessMessage(endpoint Endpoint) string {
	return ResolveMessage(endpoint, Success, "")
}
