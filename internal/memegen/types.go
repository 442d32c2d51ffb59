package memegen

import (
	"errors"
	"fmt"
	"net/url"
)

const (
	// DefaultBaseURL is the memegenerator.net v1 API root.
	DefaultBaseURL = "http://version1.api.memegenerator.net"
	// DefaultImageID is the template used when a command names none.
	DefaultImageID = "16191858"
	// GeneratorID selects the caption layout; it is the same for every template.
	GeneratorID  = "6693723"
	LanguageCode = "en"

	instanceCreatePath = "/Instance_Create"
)

var (
	// ErrTransport reports that the API could not be reached or the body could not be read.
	ErrTransport = errors.New("memegenerator unreachable")
	// ErrTimeout reports that the API did not answer within the client timeout.
	ErrTimeout = errors.New("memegenerator timed out")
)

// UnexpectedResponseError is returned when the API answers with a success
// status but the body is not shaped like an Instance_Create result.
type UnexpectedResponseError struct {
	Body []byte
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected memegenerator response: %s", e.Body)
}

// Credentials authenticate every Instance_Create call.
type Credentials struct {
	Username string
	Password string
}

// Instance is what a chat command asks for: a template and two captions.
type Instance struct {
	ImageID string
	Text0   string
	Text1   string
}

// Request is the full parameter set sent to Instance_Create.
type Request struct {
	Username     string
	Password     string
	LanguageCode string
	Text0        string
	Text1        string
	ImageID      string
	GeneratorID  string
}

// NewRequest fills the fixed parameters around an Instance.
func NewRequest(creds Credentials, inst Instance) Request {
	return Request{
		Username:     creds.Username,
		Password:     creds.Password,
		LanguageCode: LanguageCode,
		Text0:        inst.Text0,
		Text1:        inst.Text1,
		ImageID:      inst.ImageID,
		GeneratorID:  GeneratorID,
	}
}

// Values encodes the request as Instance_Create query parameters.
func (r Request) Values() url.Values {
	v := url.Values{}
	v.Set("username", r.Username)
	v.Set("password", r.Password)
	v.Set("languageCode", r.LanguageCode)
	v.Set("text0", r.Text0)
	v.Set("text1", r.Text1)
	v.Set("imageID", r.ImageID)
	v.Set("generatorID", r.GeneratorID)
	return v
}

// Outcome tags a Result.
type Outcome int

const (
	// OutcomeDeclined means the API was reached but produced no image.
	OutcomeDeclined Outcome = iota
	OutcomeGenerated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGenerated:
		return "generated"
	case OutcomeDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Instance_Create call. ImageURL is only set
// when Outcome is OutcomeGenerated.
type Result struct {
	Outcome  Outcome
	ImageURL string
}

// instanceResponse is the subset of the Instance_Create body we read.
type instanceResponse struct {
	Result *struct {
		InstanceImageURL *string `json:"instanceImageUrl"`
	} `json:"result"`
}
