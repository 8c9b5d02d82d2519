package edit

import (
	"errors"
	"testing"

	"promptglot/internal/domain"
)

func TestSelectRoute(t *testing.T) {
	mask := &domain.Upload{ContentType: "image/png", Data: []byte{1}}
	cases := []struct {
		name string
		req  domain.EditRequest
		want Route
	}{
		{name: "remove with subject", req: domain.EditRequest{Action: domain.ActionRemove, Subject: "apples"}, want: RouteSearchAndReplace},
		{name: "remove with subject and mask", req: domain.EditRequest{Action: domain.ActionRemove, Subject: "apples", Mask: mask}, want: RouteInpaint},
		{name: "remove without subject", req: domain.EditRequest{Action: domain.ActionRemove}, want: RouteInpaint},
		{name: "add", req: domain.EditRequest{Action: domain.ActionAdd, Subject: "hat"}, want: RouteInpaint},
		{name: "change with mask", req: domain.EditRequest{Action: domain.ActionChange, Mask: mask}, want: RouteInpaint},
		{name: "no action", req: domain.EditRequest{}, want: RouteInpaint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if got := SelectRoute(tc.req); got != tc.want {
					t.Fatalf("SelectRoute() = %s, want %s", got, tc.want)
				}
			}
		})
	}
}

func TestApplyIntent(t *testing.T) {
	req := domain.EditRequest{Prompt: "verwyder die appels"}
	ApplyIntent(&req, &domain.IntentResolution{Translated: "remove the apples", Action: domain.ActionRemove, Subject: "apples"})
	if req.Prompt != "remove the apples" || req.NegativePrompt != "apples" || req.Subject != "apples" {
		t.Fatalf("unexpected request after ApplyIntent: %#v", req)
	}

	req = domain.EditRequest{Prompt: "voeg 'n hoed by"}
	ApplyIntent(&req, &domain.IntentResolution{Translated: "add a hat", Action: domain.ActionAdd, Subject: "hat"})
	if req.NegativePrompt != "" {
		t.Fatalf("negative prompt set for ADD: %q", req.NegativePrompt)
	}
}

func TestAssembleOutcomeInvariant(t *testing.T) {
	cases := []struct {
		name     string
		img      *domain.EditedImage
		err      error
		success  bool
		wantType string
		wantB64  string
		wantCode string
	}{
		{name: "raw bytes", img: &domain.EditedImage{Data: []byte("abc"), OutputFormat: "webp"}, success: true, wantType: "image/webp", wantB64: "YWJj"},
		{name: "base64 with data url", img: &domain.EditedImage{Base64: "data:image/jpeg;base64,YWJj"}, success: true, wantType: "image/jpeg", wantB64: "YWJj"},
		{name: "full mime format", img: &domain.EditedImage{Base64: "YWJj", OutputFormat: "image/jpeg"}, success: true, wantType: "image/jpeg", wantB64: "YWJj"},
		{name: "default png", img: &domain.EditedImage{Base64: "YWJj"}, success: true, wantType: "image/png", wantB64: "YWJj"},
		{name: "empty payload", img: &domain.EditedImage{OutputFormat: "png"}, wantCode: "STABILITY_EMPTY_RESPONSE"},
		{name: "nil image", wantCode: "STABILITY_EMPTY_RESPONSE"},
		{name: "provider error", err: domain.Provider("stability", 402, "payment required"), wantCode: "STABILITY_HTTP_402"},
		{name: "internal error hidden", err: errors.New("socket exploded"), wantCode: domain.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, derr := Assemble("stability", tc.img, tc.err)
			if (out.ImageBase64 == "") == (out.Error == "") {
				t.Fatalf("outcome must have exactly one of image and error: %#v", out)
			}
			if out.Success != tc.success {
				t.Fatalf("success = %v, want %v", out.Success, tc.success)
			}
			if tc.success {
				if derr != nil || out.ContentType != tc.wantType || out.ImageBase64 != tc.wantB64 {
					t.Fatalf("unexpected success outcome: %#v (%v)", out, derr)
				}
				return
			}
			if derr == nil || out.Code != tc.wantCode {
				t.Fatalf("code = %s, want %s", out.Code, tc.wantCode)
			}
			if out.ContentType != "" {
				t.Fatalf("failed outcome carries content type %q", out.ContentType)
			}
		})
	}

	out, _ := Assemble("stability", nil, errors.New("socket exploded"))
	if out.Error != "An unexpected error occurred" {
		t.Fatalf("internal error leaked: %q", out.Error)
	}
}
