package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Validate struct {
	service
}

type EmailValidationResponse struct {
	BaseResponse

	Email        string `json:"email"`
	Domain       string `json:"domain"`
	Username     string `json:"username"`
	Valid        bool   `json:"is_valid"`
	Disposable   bool   `json:"is_disposable"`
	RoleAccount  bool   `json:"is_role_account"`
	HasMXRecords bool   `json:"has_mx_records"`
}

// Email checks deliverability of an address. The address is not validated
// locally so malformed input still reaches the API.
func (v *Validate) Email(
	ctx context.Context,
	email string,
	opts ...httpclient.RequestOption,
) (*EmailValidationResponse, error) {
	if err := requireValue("email", email); err != nil {
		return nil, err
	}

	return call[EmailValidationResponse](ctx, v.service, http.MethodGet, "/validate/email",
		map[string]any{"email": email}, opts...)
}

type NSFWResponse struct {
	BaseResponse

	NSFW        bool    `json:"nsfw"`
	Nudity      bool    `json:"nudity"`
	Gore        bool    `json:"gore"`
	NSFWScore   float64 `json:"nsfw_score"`
	NudityScore float64 `json:"nudity_score"`
	GoreScore   float64 `json:"gore_score"`
}

func (v *Validate) NSFW(ctx context.Context, imageURL string, opts ...httpclient.RequestOption) (*NSFWResponse, error) {
	params := &struct {
		URL string `json:"url" validate:"required,url"`
	}{URL: imageURL}

	return call[NSFWResponse](ctx, v.service, http.MethodGet, "/validate/nsfw", params, opts...)
}

type ProfanityParams struct {
	Text              string `json:"text"                         validate:"required"`
	CensorReplacement string `json:"censor_replacement,omitempty"`
}

type Profanity struct {
	Profanity  string `json:"profanity"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}

type ProfanityResponse struct {
	BaseResponse

	Message          string      `json:"message,omitempty"`
	CleanText        string      `json:"clean_text"`
	Profanities      []Profanity `json:"profanities"`
	ProfanitiesFound bool        `json:"profanities_found"`
}

func (v *Validate) Profanity(
	ctx context.Context,
	params *ProfanityParams,
	opts ...httpclient.RequestOption,
) (*ProfanityResponse, error) {
	return call[ProfanityResponse](ctx, v.service, http.MethodGet, "/validate/profanity", params, opts...)
}

type SpellCheckParams struct {
	Text         string `json:"text"                    validate:"required"`
	LanguageCode string `json:"language_code,omitempty" validate:"omitempty,langcode"`
}

type Misspelling struct {
	Word          string   `json:"word"`
	StartIndex    int      `json:"startIndex"`
	EndIndex      int      `json:"endIndex"`
	Expected      []string `json:"expected"`
	AutoCorrected bool     `json:"auto_corrected"`
}

type SpellCheckResponse struct {
	BaseResponse

	Misspellings      []Misspelling `json:"misspellings"`
	MisspellingsFound bool          `json:"misspellings_found"`
	AutoCorrectText   string        `json:"auto_correct_text"`
}

func (v *Validate) SpellCheck(
	ctx context.Context,
	params *SpellCheckParams,
	opts ...httpclient.RequestOption,
) (*SpellCheckResponse, error) {
	return call[SpellCheckResponse](ctx, v.service, http.MethodGet, "/validate/spell_check", params, opts...)
}

type SpamCheckParams struct {
	// Text is a string or a list of strings.
	Text any `json:"text" validate:"required"`
}

type SpamCheckResponse struct {
	BaseResponse

	// Check is a single verdict or one per input text.
	Check any `json:"check"`
}

func (v *Validate) SpamCheck(
	ctx context.Context,
	params *SpamCheckParams,
	opts ...httpclient.RequestOption,
) (*SpamCheckResponse, error) {
	return call[SpamCheckResponse](ctx, v.service, http.MethodPost, "/ai/spamcheck", params, opts...)
}
