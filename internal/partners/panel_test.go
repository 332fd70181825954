package partners

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/scoala-altfel/orar/backend/internal/client"
	"github.com/scoala-altfel/orar/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	partners  []domain.Partner
	notice    string
	listErr   error
	createErr error
	deleteErr error

	creates int
	block   chan struct{}
}

func (f *fakeAPI) ListPartners(ctx context.Context) (*client.PartnerList, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &client.PartnerList{Partners: f.partners, Notice: f.notice}, nil
}

func (f *fakeAPI) CreatePartner(ctx context.Context, name string) (*domain.Partner, error) {
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Partner{ID: "id-" + name, Name: name}, nil
}

func (f *fakeAPI) DeletePartner(ctx context.Context, id string) error {
	if f.block != nil {
		<-f.block
	}
	return f.deleteErr
}

func names(partners []domain.Partner) []string {
	out := make([]string, len(partners))
	for i, p := range partners {
		out[i] = p.Name
	}
	return out
}

func TestLoadSortsRomanianCaseInsensitive(t *testing.T) {
	api := &fakeAPI{partners: []domain.Partner{
		{ID: "1", Name: "Ștefan cel Mare"},
		{ID: "2", Name: "banca Transilvania"},
		{ID: "3", Name: "Arad Expo"},
		{ID: "4", Name: "Țara Hațegului"},
		{ID: "5", Name: "Zarea"},
		{ID: "6", Name: "Sanatatea"},
	}}
	p := NewPanel(api)

	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, []string{
		"Arad Expo", "banca Transilvania", "Sanatatea", "Ștefan cel Mare", "Țara Hațegului", "Zarea",
	}, names(p.Partners()))
}

func TestAddInsertsInSortedPosition(t *testing.T) {
	api := &fakeAPI{partners: []domain.Partner{{ID: "1", Name: "Arad"}, {ID: "2", Name: "Cluj"}}}
	p := NewPanel(api)
	require.NoError(t, p.Load(context.Background()))

	created, err := p.Add(context.Background(), "  brasov ")
	require.NoError(t, err)
	assert.Equal(t, "brasov", created.Name)

	assert.Equal(t, []string{"Arad", "brasov", "Cluj"}, names(p.Partners()))
	assert.Equal(t, Feedback{Kind: FeedbackSuccess, Message: MsgAdded}, p.Feedback())
	assert.False(t, p.Adding())
}

func TestAddBlankSendsNoRequest(t *testing.T) {
	api := &fakeAPI{}
	p := NewPanel(api)

	_, err := p.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrBlankName)
	assert.Equal(t, 0, api.creates)
	assert.Equal(t, FeedbackError, p.Feedback().Kind)
}

func TestAddShowsServerMessage(t *testing.T) {
	api := &fakeAPI{createErr: &client.APIError{Status: http.StatusConflict, Message: "Acest partener este deja în listă."}}
	p := NewPanel(api)

	_, err := p.Add(context.Background(), "Arad")
	require.Error(t, err)
	assert.Equal(t, "Acest partener este deja în listă.", p.Feedback().Message)
	assert.Empty(t, p.Partners())
	assert.False(t, p.Adding())

	api.createErr = errors.New("dial tcp: refused")
	_, err = p.Add(context.Background(), "Arad")
	require.Error(t, err)
	assert.Equal(t, MsgAddFailed, p.Feedback().Message)
}

func TestDeleteRemovesByID(t *testing.T) {
	api := &fakeAPI{partners: []domain.Partner{{ID: "1", Name: "Arad"}, {ID: "2", Name: "Cluj"}}}
	p := NewPanel(api)
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.Delete(context.Background(), "1"))
	assert.Equal(t, []string{"Cluj"}, names(p.Partners()))
}

func TestDeleteFailureLeavesListUnchanged(t *testing.T) {
	api := &fakeAPI{
		partners:  []domain.Partner{{ID: "1", Name: "Arad"}},
		deleteErr: errors.New("boom"),
	}
	p := NewPanel(api)
	require.NoError(t, p.Load(context.Background()))

	require.Error(t, p.Delete(context.Background(), "1"))
	assert.Len(t, p.Partners(), 1)
	assert.Equal(t, Feedback{Kind: FeedbackError, Message: MsgDeleteFailed}, p.Feedback())
	assert.False(t, p.Deleting("1"))
}

func TestDeleteDisablesOnlyTargetRow(t *testing.T) {
	api := &fakeAPI{
		partners: []domain.Partner{{ID: "1", Name: "Arad"}, {ID: "2", Name: "Cluj"}},
		block:    make(chan struct{}),
	}
	p := NewPanel(api)
	require.NoError(t, p.Load(context.Background()))

	done := make(chan error)
	go func() { done <- p.Delete(context.Background(), "1") }()

	require.Eventually(t, func() bool { return p.Deleting("1") }, time.Second, time.Millisecond)
	assert.False(t, p.Deleting("2"))
	assert.ErrorIs(t, p.Delete(context.Background(), "1"), ErrBusy)

	close(api.block)
	require.NoError(t, <-done)
	assert.False(t, p.Deleting("1"))
}

func TestLoadFailureEmptiesList(t *testing.T) {
	api := &fakeAPI{partners: []domain.Partner{{ID: "1", Name: "Arad"}}}
	p := NewPanel(api)
	require.NoError(t, p.Load(context.Background()))

	api.listErr = errors.New("offline")
	require.Error(t, p.Load(context.Background()))
	assert.Empty(t, p.Partners())

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	assert.Contains(t, buf.String(), MsgLoadFailed)
	assert.Contains(t, buf.String(), "[Reîncarcă]")
}

func TestRender(t *testing.T) {
	api := &fakeAPI{partners: []domain.Partner{{ID: "1", Name: "Cluj"}, {ID: "2", Name: "  "}, {ID: "3", Name: "Arad"}}}
	p := NewPanel(api)

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	assert.Contains(t, buf.String(), MsgEmpty)

	require.NoError(t, p.Load(context.Background()))
	buf.Reset()
	require.NoError(t, p.Render(&buf))
	assert.Contains(t, buf.String(), "Partener necunoscut • Arad • Cluj")
}

func TestSoftNoticeRendersEmptyList(t *testing.T) {
	p := NewPanel(&fakeAPI{notice: "Supabase nu este configurat."})
	require.NoError(t, p.Load(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	assert.Contains(t, buf.String(), MsgEmpty)
	assert.NotContains(t, buf.String(), "Supabase nu este configurat.")
	assert.NotContains(t, buf.String(), RetryLabel)
}
