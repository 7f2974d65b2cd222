package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amang06/aim-backend/internal/domain"
	"github.com/amang06/aim-backend/internal/pdf"
)

type dispatchRepoStub struct {
	members   []domain.MemberApplication
	listErr   error
	markErr   error
	unclaimed map[int64]bool
	marked    []int64
}

func (s *dispatchRepoStub) ListActiveUncertified(ctx context.Context, limit int) ([]domain.MemberApplication, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if len(s.members) > limit {
		return s.members[:limit], nil
	}
	return s.members, nil
}

func (s *dispatchRepoStub) MarkCertificateSent(ctx context.Context, id int64) (bool, error) {
	if s.markErr != nil {
		return false, s.markErr
	}
	s.marked = append(s.marked, id)
	return !s.unclaimed[id], nil
}

type certRendererStub struct {
	err    error
	inputs []pdf.CertificateInput
}

func (s *certRendererStub) Generate(in pdf.CertificateInput) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.inputs = append(s.inputs, in)
	return []byte("%PDF-stub"), nil
}

type mailerStub struct {
	failFor   map[int64]error
	sent      []int64
	filenames []string
}

func (s *mailerStub) SendCertificate(ctx context.Context, member domain.MemberApplication, certificate []byte, filename string) error {
	if err := s.failFor[member.ID]; err != nil {
		return err
	}
	s.sent = append(s.sent, member.ID)
	s.filenames = append(s.filenames, filename)
	return nil
}

func activeMember(id int64, company string, activatedAt time.Time) domain.MemberApplication {
	return domain.MemberApplication{
		ID:             id,
		CompanyName:    company,
		CompanyEmail:   "accounts@example.com",
		MembershipType: domain.TierAssociate,
		Status:         domain.StatusActive,
		ActivatedAt:    &activatedAt,
	}
}

func newTestDispatcher(repo DispatchRepository, certs CertificateRenderer, mailer Mailer) *CertificateDispatcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCertificateDispatcher(repo, certs, mailer, logger)
}

func TestDispatchRunCountsPerItemOutcomes(t *testing.T) {
	activated := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	// The second member has no activation timestamp, which fails the
	// per-item precondition without touching the other two.
	broken := activeMember(2, "Broken Records Ltd", activated)
	broken.ActivatedAt = nil

	repo := &dispatchRepoStub{members: []domain.MemberApplication{
		activeMember(1, "Sterling Fabrication Pvt Ltd", activated),
		broken,
		activeMember(3, "Apex Tooling Co", activated),
	}}
	certs := &certRendererStub{}
	mailer := &mailerStub{}

	result, err := newTestDispatcher(repo, certs, mailer).Run(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "member 2")

	assert.Equal(t, []int64{1, 3}, mailer.sent)
	assert.Equal(t, []int64{1, 3}, repo.marked)
}

func TestDispatchRunContinuesAfterMailFailure(t *testing.T) {
	activated := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	repo := &dispatchRepoStub{members: []domain.MemberApplication{
		activeMember(1, "Sterling Fabrication Pvt Ltd", activated),
		activeMember(2, "Apex Tooling Co", activated),
	}}
	mailer := &mailerStub{failFor: map[int64]error{1: errors.New("smtp: 451 try again later")}}

	result, err := newTestDispatcher(repo, &certRendererStub{}, mailer).Run(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)

	// The failed member is not marked, so the next run retries it.
	assert.Equal(t, []int64{2}, repo.marked)
}

func TestDispatchRunFatalOnCandidateQueryError(t *testing.T) {
	repo := &dispatchRepoStub{listErr: errors.New("db unavailable")}

	result, err := newTestDispatcher(repo, &certRendererStub{}, &mailerStub{}).Run(context.Background(), 100)
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestDispatchRunEmptyBatch(t *testing.T) {
	result, err := newTestDispatcher(&dispatchRepoStub{}, &certRendererStub{}, &mailerStub{}).Run(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, &DispatchResult{}, result)
}

func TestDispatchRunAlreadyClaimedStillCountsSuccess(t *testing.T) {
	activated := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	repo := &dispatchRepoStub{
		members:   []domain.MemberApplication{activeMember(1, "Sterling Fabrication Pvt Ltd", activated)},
		unclaimed: map[int64]bool{1: true},
	}

	result, err := newTestDispatcher(repo, &certRendererStub{}, &mailerStub{}).Run(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Zero(t, result.Failed)
}

func TestDispatchRunDerivesCertificateFields(t *testing.T) {
	activated := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	repo := &dispatchRepoStub{members: []domain.MemberApplication{
		activeMember(42, "Sterling Fabrication Pvt Ltd", activated),
	}}
	certs := &certRendererStub{}
	mailer := &mailerStub{}

	_, err := newTestDispatcher(repo, certs, mailer).Run(context.Background(), 100)
	require.NoError(t, err)

	require.Len(t, certs.inputs, 1)
	in := certs.inputs[0]
	assert.Equal(t, domain.MembershipID(42, domain.TierAssociate, time.Now().Year()), in.MembershipID)
	assert.Equal(t, "March 15, 2024 - March 15, 2025", in.MembershipDuration)

	require.Len(t, mailer.filenames, 1)
	assert.Equal(t, "AIM_Membership_Certificate_Sterling_Fabrication_Pvt_Ltd.pdf", mailer.filenames[0])
}
