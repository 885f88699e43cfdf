package confluence

import "context"

// GetCurrentUser fetches the identity the configured credentials resolve to.
// Cloud reports an account id, Server/Data Center a user key or username;
// ID carries whichever the deployment provided.
func (c *Client) GetCurrentUser(ctx context.Context) (*CurrentUser, error) {
	var user User
	if err := c.doRequest(ctx, "get_current_user", "GET", c.apiBase+"/user/current", nil, &user); err != nil {
		return nil, err
	}

	return &CurrentUser{
		ID:          firstNonEmpty(user.AccountID, user.UserKey, user.Username),
		AccountID:   user.AccountID,
		Username:    user.Username,
		UserKey:     user.UserKey,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
