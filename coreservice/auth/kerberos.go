package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/go-krb5/krb5/client"
	"github.com/go-krb5/krb5/config"
	"github.com/go-krb5/krb5/credentials"
	"github.com/go-krb5/krb5/keytab"
	"github.com/go-krb5/krb5/spnego"
)

// KerberosConfig holds the configuration for the Kerberos provider.
type KerberosConfig struct {
	// TargetSPN is the Service Principal Name of the Content Manager host
	// (e.g. "HTTP/cms.domain.com").
	TargetSPN string

	// Realm is the Kerberos realm (e.g. "DOMAIN.COM").
	Realm string

	// Krb5ConfPath is the path to the krb5.conf file
	// (default: $KRB5_CONFIG, then /etc/krb5.conf).
	Krb5ConfPath string

	// KeytabPath is the path to the keytab file (optional).
	KeytabPath string

	// CCachePath is the path to the credential cache (optional).
	CCachePath string

	// Credentials are used if KeytabPath/CCachePath are empty.
	Credentials *Credentials
}

// KerberosProvider implements SecurityProvider using the pure Go go-krb5
// library.
type KerberosProvider struct {
	client       *client.Client
	spnegoClient *spnego.SPNEGO
	targetSPN    string
	isComplete   bool
}

// NewKerberosProvider creates a new pure Go Kerberos provider. Credential
// sources are tried in order: keytab, ccache, password.
func NewKerberosProvider(cfg KerberosConfig) (*KerberosProvider, error) {
	if cfg.Krb5ConfPath == "" {
		cfg.Krb5ConfPath = os.Getenv("KRB5_CONFIG")
		if cfg.Krb5ConfPath == "" {
			cfg.Krb5ConfPath = "/etc/krb5.conf"
		}
	}
	conf, err := config.Load(cfg.Krb5ConfPath)
	if err != nil {
		return nil, fmt.Errorf("load krb5.conf from %s: %w", cfg.Krb5ConfPath, err)
	}

	var cl *client.Client

	if cfg.KeytabPath != "" {
		kt, err := keytab.Load(cfg.KeytabPath)
		if err != nil {
			return nil, fmt.Errorf("load keytab from %s: %w", cfg.KeytabPath, err)
		}
		cl = client.NewWithKeytab(cfg.Credentials.Username, cfg.Realm, kt, conf, client.DisablePAFXFAST(true))
	} else if cfg.CCachePath != "" {
		cc, err := credentials.LoadCCache(cfg.CCachePath)
		if err != nil {
			return nil, fmt.Errorf("load ccache from %s: %w", cfg.CCachePath, err)
		}
		cl, err = client.NewFromCCache(cc, conf, client.DisablePAFXFAST(true))
		if err != nil {
			return nil, fmt.Errorf("create client from ccache: %w", err)
		}
	} else if cfg.Credentials != nil {
		cl = client.NewWithPassword(
			cfg.Credentials.Username,
			cfg.Realm,
			cfg.Credentials.Password,
			conf,
			client.DisablePAFXFAST(true),
		)
	} else {
		return nil, fmt.Errorf("no credentials provided (keytab, ccache, or password required)")
	}

	return &KerberosProvider{
		client:    cl,
		targetSPN: cfg.TargetSPN,
	}, nil
}

// Step performs a GSS-API/SPNEGO step. HTTP Kerberos is one-leg: the first
// call produces the NegTokenInit, and any later server token is the mutual
// authentication acknowledgement.
func (p *KerberosProvider) Step(ctx context.Context, inputToken []byte) ([]byte, bool, error) {
	if err := p.client.Login(); err != nil {
		return nil, false, fmt.Errorf("kerberos login: %w", err)
	}

	if p.spnegoClient == nil {
		p.spnegoClient = spnego.SPNEGOClient(p.client, p.targetSPN)
	}

	if len(inputToken) > 0 {
		if !p.isComplete {
			return nil, false, fmt.Errorf(
				"received server token before client authentication completed (mutual auth not supported)")
		}
		return nil, false, nil
	}

	tkn, err := p.spnegoClient.InitSecContext()
	if err != nil {
		return nil, false, err
	}
	token, err := tkn.Marshal()
	if err != nil {
		return nil, false, fmt.Errorf("marshal token: %w", err)
	}

	p.isComplete = true
	return token, false, nil
}

// Complete returns true if the context is established.
func (p *KerberosProvider) Complete() bool {
	return p.isComplete
}

// Close releases resources.
func (p *KerberosProvider) Close() error {
	p.client.Destroy()
	return nil
}
