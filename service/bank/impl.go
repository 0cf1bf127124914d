package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/xerrors"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/bank"
)

type transferRequest struct {
	ReceiverId domain.AccountId `json:"receiverId"`
	Amount     string           `json:"amount"`
}

type impl struct {
	endpoint string
	client   *retryablehttp.Client
}

// New creates a ledger gateway client. Transfers are retried by the
// underlying client, the gateway deduplicates on its side.
func New(endpoint string, client *retryablehttp.Client) bank.Service {
	return &impl{
		endpoint: endpoint,
		client:   client,
	}
}

func (im *impl) Transfer(c ctx.Ctx, to domain.AccountId, amount string) error {
	body, err := json.Marshal(transferRequest{ReceiverId: to, Amount: amount})
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return err
	}

	url := fmt.Sprintf("%s/transfers", im.endpoint)
	req, err := retryablehttp.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.WithField("err", err).Error("retryablehttp.NewRequest failed")
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := im.client.Do(req.WithContext(c))
	if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"receiverId": to,
			"amount":     amount,
		}).Error("transfer request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := ioutil.ReadAll(resp.Body)
		c.WithFields(log.Fields{
			"status":     resp.StatusCode,
			"body":       string(payload),
			"receiverId": to,
			"amount":     amount,
		}).Error("transfer rejected")
		return xerrors.Errorf("transfer rejected with status %d", resp.StatusCode)
	}

	return nil
}
