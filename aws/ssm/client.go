// Package ssm wraps the AWS parameter store calls used to persist the
// pipeline watermark between runs.
package ssm

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
)

// ParameterStore abstracts get/put of one named string parameter.
type ParameterStore interface {
	Get(name string) (string, error)
	Put(name string, value string) error
}

// ParameterError wraps parameter store access failures.
type ParameterError struct {
	Op   string
	Name string
	Err  error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter store error during %v of %q: %v", e.Op, e.Name, e.Err)
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}

func NewParameterStore(region string) ParameterStore {
	awsConfig := aws.NewConfig()
	awsConfig.Region = aws.String(region)
	sess := session.Must(session.NewSession(awsConfig))
	return &parameterStore{api: ssm.New(sess)}
}

func NewParameterStoreWithAPI(api ssmiface.SSMAPI) ParameterStore {
	return &parameterStore{api: api}
}

type parameterStore struct {
	api ssmiface.SSMAPI
}

func (p *parameterStore) Get(name string) (string, error) {
	res, err := p.api.GetParameter(&ssm.GetParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		return "", &ParameterError{Op: "get", Name: name, Err: err}
	}
	return aws.StringValue(res.Parameter.Value), nil
}

func (p *parameterStore) Put(name string, value string) error {
	_, err := p.api.PutParameter(&ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      aws.String(ssm.ParameterTypeString),
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		return &ParameterError{Op: "put", Name: name, Err: err}
	}
	return nil
}
