package intel

import (
	"net"
	"net/mail"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"

	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

// Kind identifies what a subject is: an email address, an IP, a domain,
// or a package reference (ecosystem/name).
type Kind string

const (
	KindEmail   Kind = "email"
	KindIP      Kind = "ip"
	KindDomain  Kind = "domain"
	KindPackage Kind = "package"
)

// Subject is the value under investigation. It is immutable once classified.
type Subject struct {
	Value  string `json:"value"`
	Kind   Kind   `json:"kind"`
	Domain string `json:"domain,omitempty"` // registrable domain for email/domain subjects
}

var domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// packagePattern matches "ecosystem/name" references such as npm/lodash or
// pypi/requests. Scoped npm packages (npm/@scope/name) are accepted too.
var packagePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9.-]*/@?[a-zA-Z0-9._@/-]+$`)

// ParseKind converts a caller-supplied kind hint into a Kind.
func ParseKind(hint string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "email":
		return KindEmail, nil
	case "ip":
		return KindIP, nil
	case "domain":
		return KindDomain, nil
	case "package", "pkg":
		return KindPackage, nil
	}
	return "", sharederrors.ErrUnknownKind
}

// Classify validates a raw input value and produces an immutable Subject.
// When kindHint is empty the kind is inferred from the value's shape.
// Classification is the only place a request can fail before fan-out.
func Classify(value, kindHint string) (Subject, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Subject{}, sharederrors.ErrEmptySubject
	}

	if kindHint != "" {
		kind, err := ParseKind(kindHint)
		if err != nil {
			return Subject{}, err
		}
		return classifyAs(value, kind)
	}

	for _, kind := range []Kind{KindEmail, KindIP, KindDomain, KindPackage} {
		if subject, err := classifyAs(value, kind); err == nil {
			return subject, nil
		}
	}
	return Subject{}, sharederrors.ErrUnclassifiableSubject
}

func classifyAs(value string, kind Kind) (Subject, error) {
	switch kind {
	case KindEmail:
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return Subject{}, sharederrors.ErrUnclassifiableSubject
		}
		at := strings.LastIndex(value, "@")
		host := strings.ToLower(value[at+1:])
		if !domainPattern.MatchString(host) {
			return Subject{}, sharederrors.ErrUnclassifiableSubject
		}
		return Subject{Value: value, Kind: KindEmail, Domain: registrableDomain(host)}, nil

	case KindIP:
		if net.ParseIP(value) == nil {
			return Subject{}, sharederrors.ErrUnclassifiableSubject
		}
		return Subject{Value: value, Kind: KindIP}, nil

	case KindDomain:
		host := strings.ToLower(value)
		// Tolerate URL-ish input the way operators paste it. Stripping the
		// path means a slash value with a dotted first segment
		// (pypi.org/requests) infers as a domain; pass the package kind
		// hint to force the other reading.
		host = strings.TrimPrefix(host, "http://")
		host = strings.TrimPrefix(host, "https://")
		host = strings.Split(host, "/")[0]
		host = strings.Split(host, ":")[0]
		if net.ParseIP(host) != nil || !domainPattern.MatchString(host) {
			return Subject{}, sharederrors.ErrUnclassifiableSubject
		}
		return Subject{Value: host, Kind: KindDomain, Domain: registrableDomain(host)}, nil

	case KindPackage:
		if strings.Contains(value, "@") && !strings.Contains(value, "/") {
			return Subject{}, sharederrors.ErrUnclassifiableSubject
		}
		if !packagePattern.MatchString(value) {
			return Subject{}, sharederrors.ErrUnclassifiableSubject
		}
		return Subject{Value: value, Kind: KindPackage}, nil
	}
	return Subject{}, sharederrors.ErrUnknownKind
}

// registrableDomain reduces a hostname to its registrable domain
// (e.g. mail.corp.example.co.uk -> example.co.uk). Falls back to the
// input host when the public suffix list has no answer.
func registrableDomain(host string) string {
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}

// Ecosystem splits a package subject into ecosystem and package name.
// Returns empty strings for non-package subjects.
func (s Subject) Ecosystem() (ecosystem, name string) {
	if s.Kind != KindPackage {
		return "", ""
	}
	parts := strings.SplitN(s.Value, "/", 2)
	if len(parts) != 2 {
		return "", s.Value
	}
	return strings.ToLower(parts[0]), parts[1]
}

// NormalizedValue returns the canonical cache-key form of the subject value.
func (s Subject) NormalizedValue() string {
	switch s.Kind {
	case KindEmail:
		// Local part is case-sensitive per RFC but no provider treats it
		// that way; lowercase the whole address for cache keying.
		return strings.ToLower(s.Value)
	case KindDomain, KindPackage:
		return strings.ToLower(s.Value)
	}
	return s.Value
}
