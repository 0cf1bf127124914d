package nftregistry

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
	"github.com/astromart/goledger/domain/nftregistry"
)

type impl struct {
	endpoint string
	client   *retryablehttp.Client
}

// New creates a registry gateway client. The gateway routes the call to
// the registry account named in the path.
func New(endpoint string, client *retryablehttp.Client) nftregistry.Client {
	return &impl{
		endpoint: endpoint,
		client:   client,
	}
}

func (im *impl) TransferPayout(c ctx.Ctx, registry domain.AccountId, req *nftregistry.TransferPayoutRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return nil, err
	}

	url := fmt.Sprintf("%s/registries/%s/transfer-payout", im.endpoint, registry)
	httpReq, err := retryablehttp.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.WithField("err", err).Error("retryablehttp.NewRequest failed")
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := im.client.Do(httpReq.WithContext(c))
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"registry": registry,
			"tokenId":  req.TokenId,
		}).Error("transfer payout request failed")
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		c.WithField("err", err).Error("read payout response failed")
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.WithFields(log.Fields{
			"status":   resp.StatusCode,
			"body":     string(payload),
			"registry": registry,
			"tokenId":  req.TokenId,
		}).Error("transfer payout rejected")
		return nil, xerrors.Errorf("transfer payout rejected with status %d", resp.StatusCode)
	}

	return payload, nil
}
