package tokens

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signingAlgorithm is the only algorithm this service ever signs with or
// accepts. Anything else in a presented token is a forgery attempt.
const signingAlgorithm = "HS256"

type AccessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Sign produces a compact signed access token carrying the account's
// identity and role.
func (s *Signer) Sign(subject string, email string, role string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.Key)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %v", err)
	}
	return signed, nil
}

// Validate checks a presented access token and returns its claims.
//
// Signature, issuer, audience, and algorithm are always verified.
// checkExpiry=false skips only the lifetime check; it exists for the
// refresh flow, which must recover the subject id from an access token
// that has already expired. Claims obtained that way are trusted for the
// subject id and nothing else.
func (s *Signer) Validate(tokenStr string, checkExpiry bool) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingAlgorithm}),
	}
	if checkExpiry {
		options = append(options, jwt.WithExpirationRequired())
	} else {
		// lifetime is deliberately ignored here; issuer and audience are
		// still enforced below, outside the parser
		options = append(options, jwt.WithoutClaimsValidation())
	}

	claims := &AccessClaims{}
	token, err := jwt.NewParser(options...).ParseWithClaims(
		tokenStr,
		claims,
		func(t *jwt.Token) (any, error) { return s.config.Key, nil },
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	// re-check what the header actually claimed, independent of the parser
	// allowlist: algorithm substitution must fail even if parsing didn't
	if alg, _ := token.Header["alg"].(string); alg != signingAlgorithm {
		return nil, fmt.Errorf("%w: unexpected algorithm %q", ErrTokenInvalid, alg)
	}

	// issuer and audience are checked by hand so that both Validate modes
	// share one code path and neither can skip them
	if claims.Issuer != s.config.Issuer {
		return nil, fmt.Errorf("%w: issuer %q not accepted", ErrTokenInvalid, claims.Issuer)
	}
	if !slices.Contains(claims.Audience, s.config.Audience) {
		return nil, fmt.Errorf("%w: audience not accepted", ErrTokenInvalid)
	}

	return claims, nil
}
