package twilio

import (
	"errors"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	proxyv1 "github.com/twilio/twilio-go/rest/proxy/v1"
)

// proxyAPI is the slice of the Twilio Proxy surface the gateway needs. The
// indirection exists so the session bookkeeping can be tested without
// talking to Twilio.
type proxyAPI interface {
	CreateSession(uniqueName string) (sid string, err error)
	AddParticipant(sessionSid string, phone string, friendlyName string) error
	DeleteSession(sessionSid string) error
}

type restProxyAPI struct {
	client     *twilio.RestClient
	serviceSid string
}

func newRestProxyAPI(client *twilio.RestClient, serviceSid string) restProxyAPI {
	return restProxyAPI{client: client, serviceSid: serviceSid}
}

func (api restProxyAPI) CreateSession(uniqueName string) (string, error) {
	params := &proxyv1.CreateSessionParams{}
	params.SetUniqueName(uniqueName)
	params.SetMode("voice-and-message")

	session, err := api.client.ProxyV1.CreateSession(api.serviceSid, params)
	if err != nil {
		return "", err
	}
	if session.Sid == nil {
		return "", errors.New("twilio proxy session has no sid")
	}

	return *session.Sid, nil
}

func (api restProxyAPI) AddParticipant(sessionSid string, phone string, friendlyName string) error {
	params := &proxyv1.CreateParticipantParams{}
	params.SetIdentifier(phone)
	params.SetFriendlyName(friendlyName)

	_, err := api.client.ProxyV1.CreateParticipant(api.serviceSid, sessionSid, params)
	return err
}

func (api restProxyAPI) DeleteSession(sessionSid string) error {
	err := api.client.ProxyV1.DeleteSession(api.serviceSid, sessionSid)
	// A session Twilio already expired or removed counts as torn down.
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) && restErr.Status == 404 {
		return nil
	}

	return err
}
