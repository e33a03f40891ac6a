package gmail

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
	gmailv1 "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/talentstack/cvintake/config"
)

// NewClients builds the Gmail and Drive API clients from the OAuth
// client credentials and the cached token. The interactive consent flow
// that produces the token file is handled outside this service.
func NewClients(ctx context.Context, cfg *config.GmailConfig) (*gmailv1.Service, *drivev3.Service, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read credentials at %s", cfg.CredentialsFile)
	}

	oauthCfg, err := google.ConfigFromJSON(b,
		gmailv1.GmailReadonlyScope,
		gmailv1.GmailModifyScope,
		gmailv1.GmailSendScope,
		drivev3.DriveScope,
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse oauth config")
	}

	tok, err := readToken(cfg.TokenFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read token at %s", cfg.TokenFile)
	}

	httpClient := oauthCfg.Client(ctx, tok)

	gmailSvc, err := gmailv1.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, nil, errors.Wrap(err, "create gmail service")
	}

	driveSvc, err := drivev3.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, nil, errors.Wrap(err, "create drive service")
	}

	return gmailSvc, driveSvc, nil
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
