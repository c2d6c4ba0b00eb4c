package core

import (
	"testing"
)

func TestDecodeEnvelope_NormalizesStatusCasing(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"status":"Success","message":"done"}`))
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Status != StatusSuccess {
		t.Fatalf("expected normalized success status, got %q", env.Status)
	}
	if !env.OK() {
		t.Fatalf("expected envelope to report success")
	}
}

func TestDecodeEnvelope_EmptyBodyIsNotAnError(t *testing.T) {
	for _, body := range [][]byte{nil, {}, []byte("   \n")} {
		env, err := DecodeEnvelope(body)
		if err != nil {
			t.Fatalf("empty body should decode cleanly, got %v", err)
		}
		if env.Status != "" || env.Message != "" || len(env.Data) != 0 {
			t.Fatalf("expected zero envelope for empty body, got %+v", env)
		}
	}
}

func TestDecodeEnvelope_MalformedJSONIsDecodeFailure(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{"status":`))
	if err == nil {
		t.Fatalf("expected decode failure for malformed body")
	}
}

func TestEnvelope_OKFallsBackToMessage(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"message":"success"}`))
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.OK() {
		t.Fatalf("expected message-only success envelope to report success")
	}

	env, err = DecodeEnvelope([]byte(`{"status":"error","message":"boom"}`))
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.OK() {
		t.Fatalf("expected error envelope to not report success")
	}
}

func TestEnvelope_DecodeDataAndCartFields(t *testing.T) {
	body := []byte(`{
		"status": "success",
		"numOfCartItems": 3,
		"data": {"_id": "cart-1", "totalCartPrice": 120.5, "products": [
			{"count": 3, "price": 40, "product": {"_id": "p1", "title": "Mouse", "price": 40}}
		]}
	}`)
	env, err := DecodeEnvelope(body)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.NumOfCartItems != 3 {
		t.Fatalf("expected numOfCartItems 3, got %d", env.NumOfCartItems)
	}

	snapshot := CartSnapshot{}
	if err := env.DecodeData(&snapshot); err != nil {
		t.Fatalf("decode cart data: %v", err)
	}
	if snapshot.ID != "cart-1" {
		t.Fatalf("expected cart id cart-1, got %q", snapshot.ID)
	}
	if len(snapshot.Items) != 1 || snapshot.Items[0].Product.ID != "p1" {
		t.Fatalf("unexpected cart items: %+v", snapshot.Items)
	}
	if snapshot.TotalPrice.String() != "120.5" {
		t.Fatalf("expected server total 120.5, got %s", snapshot.TotalPrice)
	}
}

func TestEnvelope_DecodeDataToleratesNull(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"status":"success","data":null}`))
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	snapshot := CartSnapshot{ID: "keep"}
	if err := env.DecodeData(&snapshot); err != nil {
		t.Fatalf("null data should be a no-op, got %v", err)
	}
	if snapshot.ID != "keep" {
		t.Fatalf("null data should leave target untouched")
	}
}
