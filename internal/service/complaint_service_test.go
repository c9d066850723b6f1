package service

import (
	"errors"
	"testing"

	"pdam-be-svc/internal/models"
	"pdam-be-svc/pkg/logger"
)

func newTestComplaintService(t *testing.T) (ComplaintService, *fakePengaduanRepo) {
	t.Helper()
	repo := newFakePengaduanRepo()
	svc := NewComplaintService(repo, t.TempDir(), logger.NewLogger("error", "text"))
	return svc, repo
}

func TestSubmitGuestMessage(t *testing.T) {
	svc, _ := newTestComplaintService(t)

	pengaduan, err := svc.SubmitGuestMessage("Tamu", "tamu@mail.com", "Air mati sejak kemarin")
	if err != nil {
		t.Fatalf("SubmitGuestMessage returned error: %v", err)
	}

	if pengaduan.UserID != nil {
		t.Error("expected guest message to have no owning user")
	}
	if pengaduan.Judul != "Pesan Tamu: Tamu" {
		t.Errorf("unexpected judul: %s", pengaduan.Judul)
	}
	if pengaduan.Status != models.PengaduanPending {
		t.Errorf("expected status PENDING, got %s", pengaduan.Status)
	}
	if pengaduan.IsRead {
		t.Error("expected new message to be unread")
	}
}

func TestSubmitGuestMessageMissingFields(t *testing.T) {
	svc, _ := newTestComplaintService(t)

	cases := []struct {
		name, nama, email, pesan string
	}{
		{"empty pesan", "Tamu", "tamu@mail.com", ""},
		{"empty nama", "", "tamu@mail.com", "halo"},
		{"empty email", "Tamu", "", "halo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SubmitGuestMessage(tc.nama, tc.email, tc.pesan); !errors.Is(err, ErrMissingFields) {
				t.Errorf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestSubmitPengaduanGuestRequiresIdentity(t *testing.T) {
	svc, _ := newTestComplaintService(t)

	_, err := svc.SubmitPengaduan(SubmitPengaduanInput{
		Judul:     "Keluhan",
		Deskripsi: "Air keruh",
	})
	if !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields for anonymous guest, got %v", err)
	}
}

func TestSubmitPengaduanOwnedByCustomer(t *testing.T) {
	svc, _ := newTestComplaintService(t)

	userID := uint(5)
	pengaduan, err := svc.SubmitPengaduan(SubmitPengaduanInput{
		UserID:    &userID,
		Nama:      "should be ignored",
		Email:     "ignored@mail.com",
		Judul:     "Keluhan",
		Deskripsi: "Air keruh",
	})
	if err != nil {
		t.Fatalf("SubmitPengaduan returned error: %v", err)
	}

	if pengaduan.UserID == nil || *pengaduan.UserID != userID {
		t.Error("expected complaint to be owned by the customer")
	}
	if pengaduan.Nama != "" || pengaduan.Email != "" {
		t.Error("expected guest identity fields to be empty for owned complaints")
	}
}

func TestSoftDeleteHidesFromCustomerHistoryOnly(t *testing.T) {
	svc, _ := newTestComplaintService(t)

	userID := uint(3)
	first, _ := svc.SubmitPengaduan(SubmitPengaduanInput{UserID: &userID, Judul: "A", Deskripsi: "a"})
	if _, err := svc.SubmitPengaduan(SubmitPengaduanInput{UserID: &userID, Judul: "B", Deskripsi: "b"}); err != nil {
		t.Fatalf("SubmitPengaduan returned error: %v", err)
	}

	if err := svc.SoftDelete(first.ID, userID); err != nil {
		t.Fatalf("SoftDelete returned error: %v", err)
	}

	history, err := svc.GetPengaduanByUser(userID)
	if err != nil {
		t.Fatalf("GetPengaduanByUser returned error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected 1 complaint in customer history, got %d", len(history))
	}

	inbox, err := svc.GetInbox()
	if err != nil {
		t.Fatalf("GetInbox returned error: %v", err)
	}
	if len(inbox) != 2 {
		t.Errorf("expected 2 complaints in manager inbox, got %d", len(inbox))
	}
}

func TestSoftDeleteRejectsNonOwner(t *testing.T) {
	svc, _ := newTestComplaintService(t)

	userID := uint(3)
	created, err := svc.SubmitPengaduan(SubmitPengaduanInput{UserID: &userID, Judul: "A", Deskripsi: "a"})
	if err != nil {
		t.Fatalf("SubmitPengaduan returned error: %v", err)
	}

	if err := svc.SoftDelete(created.ID, 4); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for another customer, got %v", err)
	}

	// Guest complaints have no owner, so no customer may hide them
	guest, err := svc.SubmitGuestMessage("Tamu", "tamu@mail.com", "halo")
	if err != nil {
		t.Fatalf("SubmitGuestMessage returned error: %v", err)
	}
	if err := svc.SoftDelete(guest.ID, 3); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for guest complaint, got %v", err)
	}

	history, err := svc.GetPengaduanByUser(userID)
	if err != nil {
		t.Fatalf("GetPengaduanByUser returned error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected complaint still in history, got %d rows", len(history))
	}
}

func TestMarkInboxRead(t *testing.T) {
	svc, repo := newTestComplaintService(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.SubmitGuestMessage("Tamu", "tamu@mail.com", "halo"); err != nil {
			t.Fatalf("SubmitGuestMessage returned error: %v", err)
		}
	}

	// Listing the inbox must not flip read flags
	if _, err := svc.GetInbox(); err != nil {
		t.Fatalf("GetInbox returned error: %v", err)
	}
	if unread, _ := repo.CountUnread(); unread != 3 {
		t.Errorf("expected 3 unread after listing, got %d", unread)
	}

	marked, err := svc.MarkInboxRead()
	if err != nil {
		t.Fatalf("MarkInboxRead returned error: %v", err)
	}
	if marked != 3 {
		t.Errorf("expected 3 marked, got %d", marked)
	}

	marked, err = svc.MarkInboxRead()
	if err != nil {
		t.Fatalf("second MarkInboxRead returned error: %v", err)
	}
	if marked != 0 {
		t.Errorf("expected 0 marked on second call, got %d", marked)
	}
}

func TestReplySetsStatusAndTanggapan(t *testing.T) {
	svc, _ := newTestComplaintService(t)

	created, _ := svc.SubmitGuestMessage("Tamu", "tamu@mail.com", "halo")

	pengaduan, err := svc.Reply(created.ID, models.PengaduanSelesai, "Sudah ditangani")
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}

	if pengaduan.Status != models.PengaduanSelesai {
		t.Errorf("expected status SELESAI, got %s", pengaduan.Status)
	}
	if pengaduan.Tanggapan == nil || *pengaduan.Tanggapan != "Sudah ditangani" {
		t.Error("expected tanggapan to be set")
	}
}

func TestHardDeleteRemovesRow(t *testing.T) {
	svc, _ := newTestComplaintService(t)

	created, _ := svc.SubmitGuestMessage("Tamu", "tamu@mail.com", "halo")

	if err := svc.HardDelete(created.ID); err != nil {
		t.Fatalf("HardDelete returned error: %v", err)
	}

	inbox, _ := svc.GetInbox()
	if len(inbox) != 0 {
		t.Errorf("expected empty inbox after hard delete, got %d rows", len(inbox))
	}
}
