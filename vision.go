package jigsawstack

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Vision struct {
	service
}

type VOCRParams struct {
	// Prompt is a string, a list of strings or a map of keys to prompts.
	Prompt       any    `json:"prompt,omitempty"`
	URL          string `json:"url,omitempty"            validate:"required_without=FileStoreKey,omitempty,url"`
	FileStoreKey string `json:"file_store_key,omitempty"`
	PageRange    []int  `json:"page_range,omitempty"     validate:"omitempty,len=2"`
}

type VOCRSection struct {
	Text  string            `json:"text"`
	Lines []json.RawMessage `json:"lines"`
}

type VOCRResponse struct {
	BaseResponse

	Context    any           `json:"context"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Tags       []string      `json:"tags"`
	HasText    bool          `json:"has_text"`
	Sections   []VOCRSection `json:"sections"`
	TotalPages int           `json:"total_pages,omitempty"`
	PageRange  []int         `json:"page_range,omitempty"`
}

func (v *Vision) VOCR(ctx context.Context, params *VOCRParams, opts ...httpclient.RequestOption) (*VOCRResponse, error) {
	return call[VOCRResponse](ctx, v.service, http.MethodPost, "/vocr", params, opts...)
}

type ObjectDetectionParams struct {
	URL            string   `json:"url,omitempty"             validate:"required_without=FileStoreKey,omitempty,url"`
	FileStoreKey   string   `json:"file_store_key,omitempty"`
	Prompts        []string `json:"prompts,omitempty"`
	Features       []string `json:"features,omitempty"        validate:"omitempty,dive,oneof=object_detection gui"`
	AnnotatedImage *bool    `json:"annotated_image,omitempty"`
	ReturnType     string   `json:"return_type,omitempty"     validate:"omitempty,oneof=url base64"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BoundingBox struct {
	TopLeft     Point   `json:"top_left"`
	TopRight    Point   `json:"top_right"`
	BottomLeft  Point   `json:"bottom_left"`
	BottomRight Point   `json:"bottom_right"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

type DetectedObject struct {
	Label  string      `json:"label"`
	Bounds BoundingBox `json:"bounds"`
	Mask   string      `json:"mask,omitempty"`
}

type GUIElement struct {
	Bounds      BoundingBox `json:"bounds"`
	Content     any         `json:"content"`
	Interactive bool        `json:"interactivity,omitempty"`
}

type ObjectDetectionResponse struct {
	BaseResponse

	AnnotatedImage string           `json:"annotated_image,omitempty"`
	Objects        []DetectedObject `json:"objects,omitempty"`
	GUIElements    []GUIElement     `json:"gui_elements,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
}

func (v *Vision) ObjectDetection(
	ctx context.Context,
	params *ObjectDetectionParams,
	opts ...httpclient.RequestOption,
) (*ObjectDetectionResponse, error) {
	return call[ObjectDetectionResponse](ctx, v.service, http.MethodPost, "/ai/object_detection", params, opts...)
}
