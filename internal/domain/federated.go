package domain

import (
	"fmt"
	"strings"
)

// FederatedUser is the normalized result of a provider's userinfo response:
// everything the auth core needs from a federated login callback.
type FederatedUser struct {
	Provider    Provider
	SubjectID   string
	Email       string
	FullName    string
	AccessToken string
}

// ParseProvider maps an OAuth registration id (e.g. "google") onto a Provider.
func ParseProvider(registrationID string) (Provider, error) {
	switch Provider(strings.ToUpper(registrationID)) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderKakao:
		return ProviderKakao, nil
	case ProviderNaver:
		return ProviderNaver, nil
	case ProviderGithub:
		return ProviderGithub, nil
	default:
		return "", fmt.Errorf("unknown oauth provider %q", registrationID)
	}
}

// MapClaims extracts the subject id, email and display name from a provider's
// raw userinfo attribute map. Each provider nests these differently, so the
// mapping is switched on the provider tag.
func (p Provider) MapClaims(attrs map[string]interface{}) (FederatedUser, error) {
	var fu FederatedUser
	fu.Provider = p

	switch p {
	case ProviderGoogle:
		fu.SubjectID = stringAttr(attrs, "sub")
		if fu.SubjectID == "" {
			fu.SubjectID = stringAttr(attrs, "id")
		}
		fu.Email = stringAttr(attrs, "email")
		fu.FullName = stringAttr(attrs, "name")

	case ProviderKakao:
		fu.SubjectID = stringAttr(attrs, "id")
		if account, ok := attrs["kakao_account"].(map[string]interface{}); ok {
			fu.Email = stringAttr(account, "email")
		}
		if props, ok := attrs["properties"].(map[string]interface{}); ok {
			fu.FullName = stringAttr(props, "nickname")
		}

	case ProviderNaver:
		resp, ok := attrs["response"].(map[string]interface{})
		if !ok {
			return fu, fmt.Errorf("naver userinfo missing response object")
		}
		fu.SubjectID = stringAttr(resp, "id")
		fu.Email = stringAttr(resp, "email")
		fu.FullName = stringAttr(resp, "name")

	case ProviderGithub:
		fu.SubjectID = stringAttr(attrs, "id")
		fu.Email = stringAttr(attrs, "email")
		fu.FullName = stringAttr(attrs, "name")
		if fu.FullName == "" {
			fu.FullName = stringAttr(attrs, "login")
		}

	default:
		return fu, fmt.Errorf("provider %q does not support federated login", p)
	}

	if fu.SubjectID == "" {
		return fu, fmt.Errorf("%s userinfo missing subject id", p)
	}
	if fu.Email == "" {
		return fu, fmt.Errorf("%s userinfo missing email", p)
	}
	return fu, nil
}

// stringAttr tolerates numeric ids (Kakao and GitHub return them as JSON
// numbers) by formatting them back to a string.
func stringAttr(attrs map[string]interface{}, key string) string {
	switch v := attrs[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
