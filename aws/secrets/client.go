// Package secrets fetches database credentials from AWS Secrets Manager.
package secrets

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/pkg/errors"
)

// DbSecret holds the connection details stored against a secret id.
type DbSecret struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Dbname   string `json:"dbname"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialsError wraps failures to fetch or decode a secret.
type CredentialsError struct {
	SecretId string
	Err      error
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("credentials error for secret %q: %v", e.SecretId, e.Err)
}

func (e *CredentialsError) Unwrap() error {
	return e.Err
}

// Getter fetches database credentials by secret id.
type Getter interface {
	Get(secretId string) (DbSecret, error)
}

func NewGetter(region string) Getter {
	awsConfig := aws.NewConfig()
	awsConfig.Region = aws.String(region)
	sess := session.Must(session.NewSession(awsConfig))
	return &getter{api: secretsmanager.New(sess)}
}

func NewGetterWithAPI(api secretsmanageriface.SecretsManagerAPI) Getter {
	return &getter{api: api}
}

type getter struct {
	api secretsmanageriface.SecretsManagerAPI
}

func (g *getter) Get(secretId string) (DbSecret, error) {
	res, err := g.api.GetSecretValue(&secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretId),
	})
	if err != nil {
		return DbSecret{}, &CredentialsError{SecretId: secretId, Err: err}
	}
	if res.SecretString == nil {
		return DbSecret{}, &CredentialsError{SecretId: secretId, Err: errors.New("secret has no string value")}
	}
	var s DbSecret
	if err := json.Unmarshal([]byte(*res.SecretString), &s); err != nil {
		return DbSecret{}, &CredentialsError{SecretId: secretId, Err: errors.Wrap(err, "decoding secret JSON")}
	}
	return s, nil
}
