package cognitoclient

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// ErrNewPasswordRequired is returned by SignIn when the account was created
// by an administrator and the temporary password was never replaced.
var ErrNewPasswordRequired = errors.New("new password required")

// User is the default user struct for staff provisioning.
type User struct {
	Email             string `json:"email"`
	TemporaryPassword string `json:"password"`
}

// UserLogin defines the standard structure for logging in to the application.
type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthCreate represents the response of Cognito sign in approval.
type AuthCreate struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
}

type CognitoInterface interface {
	SignIn(ctx context.Context, user *UserLogin) (*AuthCreate, error)
	AdminCreateUser(ctx context.Context, user *User) (string, error)
	AdminDeleteUser(ctx context.Context, email string) error
}

// API is the subset of the SDK client used here.
type API interface {
	InitiateAuth(ctx context.Context, in *cognito.InitiateAuthInput, optFns ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error)
	AdminCreateUser(ctx context.Context, in *cognito.AdminCreateUserInput, optFns ...func(*cognito.Options)) (*cognito.AdminCreateUserOutput, error)
	AdminDeleteUser(ctx context.Context, in *cognito.AdminDeleteUserInput, optFns ...func(*cognito.Options)) (*cognito.AdminDeleteUserOutput, error)
}

type cognitoClient struct {
	api         API
	userPoolID  string
	appClientID string
}

func InitCognitoClient(ctx context.Context, region, userPoolID, appClientID string) (CognitoInterface, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewWithAPI(cognito.NewFromConfig(cfg), userPoolID, appClientID), nil
}

func NewWithAPI(api API, userPoolID, appClientID string) CognitoInterface {
	return &cognitoClient{
		api:         api,
		userPoolID:  userPoolID,
		appClientID: appClientID,
	}
}

// SignIn signs the user in... pretty straightforward
func (c *cognitoClient) SignIn(ctx context.Context, user *UserLogin) (*AuthCreate, error) {
	result, err := c.api.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": user.Email,
			"PASSWORD": user.Password,
		},
		ClientId: aws.String(c.appClientID),
	})
	if err != nil {
		return nil, err
	}

	if result.ChallengeName == types.ChallengeNameTypeNewPasswordRequired {
		return nil, ErrNewPasswordRequired
	}

	if result.AuthenticationResult == nil {
		return nil, errors.New("cognito returned no authentication result")
	}

	return &AuthCreate{
		IDToken:     aws.ToString(result.AuthenticationResult.IdToken),
		AccessToken: aws.ToString(result.AuthenticationResult.AccessToken),
	}, nil
}

// AdminCreateUser registers a staff account with a verified email and
// returns its "sub" (the UUID). Cognito mails the temporary password.
func (c *cognitoClient) AdminCreateUser(ctx context.Context, user *User) (string, error) {
	out, err := c.api.AdminCreateUser(ctx, &cognito.AdminCreateUserInput{
		UserPoolId:        aws.String(c.userPoolID),
		Username:          aws.String(user.Email),
		TemporaryPassword: aws.String(user.TemporaryPassword),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(user.Email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
		DesiredDeliveryMediums: []types.DeliveryMediumType{types.DeliveryMediumTypeEmail},
	})
	if err != nil {
		return "", err
	}

	if out.User != nil {
		for _, attr := range out.User.Attributes {
			if aws.ToString(attr.Name) == "sub" {
				return aws.ToString(attr.Value), nil
			}
		}
	}
	return "", errors.New("cognito user has no sub attribute")
}

// AdminDeleteUser removes the account, used to revert failed registrations.
func (c *cognitoClient) AdminDeleteUser(ctx context.Context, email string) error {
	_, err := c.api.AdminDeleteUser(ctx, &cognito.AdminDeleteUserInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
	})
	return err
}
