package cloudinary

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Verifier checks that photo references submitted with a listing were
// really uploaded to the media provider. The provider signs each upload
// with SHA-1 over the sorted parameter string plus the API secret; the
// client echoes that signature back and we recompute it here.
type Verifier struct {
	apiSecret string
}

func NewVerifier(apiSecret string) *Verifier {
	return &Verifier{apiSecret: apiSecret}
}

// Signature computes the provider signature for a public id and upload
// version. Parameters are serialized in alphabetical order.
func (v *Verifier) Signature(publicID string, version int64) string {
	toSign := fmt.Sprintf("public_id=%s&version=%d%s", publicID, version, v.apiSecret)
	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}

func (v *Verifier) IsUploadOk(publicID string, version int64, signature string) bool {
	expected := v.Signature(publicID, version)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
