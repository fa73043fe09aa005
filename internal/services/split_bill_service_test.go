package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func threeWaySplit(total float64) []ParticipantInput {
	share := total / 3
	return []ParticipantInput{
		{Name: "Asha", Phone: "9000000001", Amount: share},
		{Name: "Ravi", Phone: "9000000002", Amount: share},
		{Name: "Kiran", Phone: "9000000003", Amount: share},
	}
}

func TestCreateSplitBill(t *testing.T) {
	t.Run("valid_even_split", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		bill, err := svc.CreateSplitBill(user.ID, 300, "Dinner", threeWaySplit(300))
		testutil.AssertNoError(t, err)

		if bill.Status != models.BillStatusPending {
			t.Errorf("expected pending bill, got %s", bill.Status)
		}
		if len(bill.Participants) != 3 {
			t.Fatalf("expected 3 participants, got %d", len(bill.Participants))
		}
		if bill.Participants[0].Status != models.ParticipantStatusPaid {
			t.Error("expected the first participant (the payer) to start paid")
		}
		for _, p := range bill.Participants[1:] {
			if p.Status != models.ParticipantStatusPending {
				t.Errorf("expected remaining participants pending, got %s", p.Status)
			}
		}
	})

	t.Run("sum_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		participants := []ParticipantInput{
			{Name: "Asha", Phone: "9000000001", Amount: 100},
			{Name: "Ravi", Phone: "9000000002", Amount: 100},
		}
		_, err := svc.CreateSplitBill(user.ID, 300, "Dinner", participants)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rounding_within_tolerance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		// 33.33 * 3 = 99.99, one paisa short of 100.
		participants := []ParticipantInput{
			{Name: "Asha", Phone: "9000000001", Amount: 33.33},
			{Name: "Ravi", Phone: "9000000002", Amount: 33.33},
			{Name: "Kiran", Phone: "9000000003", Amount: 33.33},
		}
		_, err := svc.CreateSplitBill(user.ID, 100, "Lunch", participants)
		testutil.AssertNoError(t, err)
	})

	t.Run("rounding_beyond_tolerance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		participants := []ParticipantInput{
			{Name: "Asha", Phone: "9000000001", Amount: 33.33},
			{Name: "Ravi", Phone: "9000000002", Amount: 33.33},
			{Name: "Kiran", Phone: "9000000003", Amount: 33.32},
		}
		_, err := svc.CreateSplitBill(user.ID, 100, "Lunch", participants)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("fewer_than_two_participants", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		participants := []ParticipantInput{
			{Name: "Asha", Phone: "9000000001", Amount: 300},
		}
		_, err := svc.CreateSplitBill(user.ID, 300, "Dinner", participants)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("participant_missing_phone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		participants := []ParticipantInput{
			{Name: "Asha", Phone: "9000000001", Amount: 150},
			{Name: "Ravi", Phone: "  ", Amount: 150},
		}
		_, err := svc.CreateSplitBill(user.ID, 300, "Dinner", participants)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSplitBill(user.ID, 0, "Dinner", threeWaySplit(0))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserSplitBills(t *testing.T) {
	t.Run("paginated_with_participants", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		for i := 0; i < 3; i++ {
			testutil.CreateTestSplitBill(t, db, user.ID, 300, 3)
		}

		page, err := svc.GetUserSplitBills(user.ID, pagination.PageRequest{Page: 1, Limit: 2}, nil)
		testutil.AssertNoError(t, err)

		if page.TotalItems != 3 {
			t.Errorf("expected 3 total items, got %d", page.TotalItems)
		}
		if page.TotalPages != 2 {
			t.Errorf("expected 2 total pages, got %d", page.TotalPages)
		}
		if len(page.Data) != 2 {
			t.Fatalf("expected 2 bills on page 1, got %d", len(page.Data))
		}
		if len(page.Data[0].Participants) != 3 {
			t.Errorf("expected participants preloaded, got %d", len(page.Data[0].Participants))
		}
	})

	t.Run("filter_by_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		pending := testutil.CreateTestSplitBill(t, db, user.ID, 300, 3)
		cancelled := testutil.CreateTestSplitBill(t, db, user.ID, 100, 2)
		db.Model(cancelled).Update("status", models.BillStatusCancelled)

		status := models.BillStatusPending
		page, err := svc.GetUserSplitBills(user.ID, pagination.PageRequest{}, &status)
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Fatalf("expected 1 pending bill, got %d", page.TotalItems)
		}
		if page.Data[0].ID != pending.ID {
			t.Error("expected the pending bill to be returned")
		}
	})

	t.Run("only_own_bills", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		testutil.CreateTestSplitBill(t, db, alice.ID, 300, 3)
		testutil.CreateTestSplitBill(t, db, bob.ID, 200, 2)

		page, err := svc.GetUserSplitBills(alice.ID, pagination.PageRequest{}, nil)
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Errorf("expected 1 bill, got %d", page.TotalItems)
		}
	})
}

func TestGetSplitBillByID(t *testing.T) {
	t.Run("participants_in_input_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateSplitBill(user.ID, 300, "Dinner", threeWaySplit(300))
		testutil.AssertNoError(t, err)

		bill, err := svc.GetSplitBillByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)

		names := []string{"Asha", "Ravi", "Kiran"}
		for i, p := range bill.Participants {
			if p.Name != names[i] {
				t.Errorf("expected participant %d to be %s, got %s", i, names[i], p.Name)
			}
		}
	})

	t.Run("cannot_read_another_users_bill", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		bill := testutil.CreateTestSplitBill(t, db, alice.ID, 300, 3)

		_, err := svc.GetSplitBillByID(bob.ID, bill.ID)
		testutil.AssertAppError(t, err, "SPLIT_BILL_NOT_FOUND")
	})
}

func TestUpdateSplitBillStatus(t *testing.T) {
	t.Run("manual_override", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)
		bill := testutil.CreateTestSplitBill(t, db, user.ID, 300, 3)

		updated, err := svc.UpdateSplitBillStatus(user.ID, bill.ID, models.BillStatusCancelled)
		testutil.AssertNoError(t, err)

		if updated.Status != models.BillStatusCancelled {
			t.Errorf("expected cancelled, got %s", updated.Status)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateSplitBillStatus(user.ID, "00000000-0000-0000-0000-000000000000", models.BillStatusCompleted)
		testutil.AssertAppError(t, err, "SPLIT_BILL_NOT_FOUND")
	})
}

func TestUpdateParticipantStatus(t *testing.T) {
	t.Run("marks_share_paid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateSplitBill(user.ID, 300, "Dinner", threeWaySplit(300))
		testutil.AssertNoError(t, err)

		bill, err := svc.UpdateParticipantStatus(user.ID, created.ID, "9000000002", models.ParticipantStatusPaid)
		testutil.AssertNoError(t, err)

		// One participant still pending, so the bill stays pending.
		if bill.Status != models.BillStatusPending {
			t.Errorf("expected bill still pending, got %s", bill.Status)
		}
	})

	t.Run("auto_completes_when_all_paid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateSplitBill(user.ID, 300, "Dinner", threeWaySplit(300))
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateParticipantStatus(user.ID, created.ID, "9000000002", models.ParticipantStatusPaid)
		testutil.AssertNoError(t, err)
		bill, err := svc.UpdateParticipantStatus(user.ID, created.ID, "9000000003", models.ParticipantStatusPaid)
		testutil.AssertNoError(t, err)

		if bill.Status != models.BillStatusCompleted {
			t.Errorf("expected bill completed once all shares are paid, got %s", bill.Status)
		}

		var reloaded models.SplitBill
		db.First(&reloaded, "id = ?", created.ID)
		if reloaded.Status != models.BillStatusCompleted {
			t.Errorf("expected completion persisted, got %s", reloaded.Status)
		}
	})

	t.Run("pending_revert_does_not_reopen_completed_bill", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateSplitBill(user.ID, 300, "Dinner", threeWaySplit(300))
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateParticipantStatus(user.ID, created.ID, "9000000002", models.ParticipantStatusPaid)
		testutil.AssertNoError(t, err)
		_, err = svc.UpdateParticipantStatus(user.ID, created.ID, "9000000003", models.ParticipantStatusPaid)
		testutil.AssertNoError(t, err)

		bill, err := svc.UpdateParticipantStatus(user.ID, created.ID, "9000000002", models.ParticipantStatusPending)
		testutil.AssertNoError(t, err)

		if bill.Status != models.BillStatusCompleted {
			t.Errorf("expected completed bill to stay completed, got %s", bill.Status)
		}
	})

	t.Run("unknown_phone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)
		bill := testutil.CreateTestSplitBill(t, db, user.ID, 300, 3)

		_, err := svc.UpdateParticipantStatus(user.ID, bill.ID, "9999999999", models.ParticipantStatusPaid)
		testutil.AssertAppError(t, err, "PARTICIPANT_NOT_FOUND")
	})

	t.Run("cannot_touch_another_users_bill", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		bill := testutil.CreateTestSplitBill(t, db, alice.ID, 300, 3)

		_, err := svc.UpdateParticipantStatus(bob.ID, bill.ID, bill.Participants[0].Phone, models.ParticipantStatusPaid)
		testutil.AssertAppError(t, err, "SPLIT_BILL_NOT_FOUND")
	})
}

func TestDeleteSplitBill(t *testing.T) {
	t.Run("cascades_participants", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		user := testutil.CreateTestUser(t, db)
		bill := testutil.CreateTestSplitBill(t, db, user.ID, 300, 3)

		testutil.AssertNoError(t, svc.DeleteSplitBill(user.ID, bill.ID))

		var count int64
		db.Model(&models.Participant{}).Where("split_bill_id = ?", bill.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected participants deleted with the bill, got %d", count)
		}
	})

	t.Run("cannot_delete_another_users_bill", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSplitBillService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		bill := testutil.CreateTestSplitBill(t, db, alice.ID, 300, 3)

		err := svc.DeleteSplitBill(bob.ID, bill.ID)
		testutil.AssertAppError(t, err, "SPLIT_BILL_NOT_FOUND")
	})
}
