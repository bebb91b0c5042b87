package services

import (
	"testing"

	"endpage/internal/models"
	"endpage/internal/testutil"
)

func TestAddComment(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewCommentService(store)
	owner := testutil.CreateTestUser(t, db)
	page := testutil.CreateTestEndPage(t, db, owner.ID)

	refs := map[string]string{
		"uuid": page.UUID,
		"iri":  "/api/end_pages/" + page.UUID,
	}
	for name, ref := range refs {
		t.Run(name, func(t *testing.T) {
			comment, err := svc.AddComment(ref, "Bob", "Good luck!", Anonymous)
			testutil.AssertNoError(t, err)
			if comment.ID == 0 || comment.EndPageID != page.ID {
				t.Errorf("unexpected comment %+v", comment)
			}
		})
	}

	t.Run("flagged_text_is_not_moderated", func(t *testing.T) {
		_, err := svc.AddComment(page.UUID, "Bob", "you idiot", Anonymous)
		testutil.AssertNoError(t, err)
	})

	t.Run("missing_author", func(t *testing.T) {
		_, err := svc.AddComment(page.UUID, "", "hi", Anonymous)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_page", func(t *testing.T) {
		_, err := svc.AddComment("/api/end_pages/0190c7a4-2b3c-7d1e-8f00-000000000000", "Bob", "hi", Anonymous)
		testutil.AssertAppError(t, err, "END_PAGE_NOT_FOUND")
	})

	t.Run("private_page_follows_read_rule", func(t *testing.T) {
		private := testutil.CreateTestPrivateEndPage(t, db, owner.ID)

		_, err := svc.AddComment(private.UUID, "Bob", "hi", Anonymous)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")

		_, err = svc.AddComment(private.UUID, "Bob", "hi", Viewer{UserID: owner.ID + 100, Roles: []string{models.RoleUser}})
		testutil.AssertAppError(t, err, "FORBIDDEN")

		comment, err := svc.AddComment(private.UUID, "Bob", "hi", Viewer{UserID: owner.ID, Roles: []string{models.RoleUser}})
		testutil.AssertNoError(t, err)
		if comment.EndPageID != private.ID {
			t.Errorf("expected comment on page %d, got %d", private.ID, comment.EndPageID)
		}

		_, err = svc.AddComment(private.UUID, "Bob", "hi", Viewer{UserID: owner.ID + 100, Roles: []string{models.RoleAdmin}})
		testutil.AssertNoError(t, err)
	})

	t.Run("malformed_reference", func(t *testing.T) {
		_, err := svc.AddComment("nope", "Bob", "hi", Anonymous)
		testutil.AssertAppError(t, err, "INVALID_UUID")
	})
}

func TestListComments(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewCommentService(store)
	owner := testutil.CreateTestUser(t, db)
	public := testutil.CreateTestEndPage(t, db, owner.ID)
	private := testutil.CreateTestPrivateEndPage(t, db, owner.ID)

	first := testutil.CreateTestComment(t, db, public.ID, "first")
	second := testutil.CreateTestComment(t, db, public.ID, "second")
	testutil.CreateTestComment(t, db, private.ID, "secret")

	t.Run("newest_first_by_id_reference", func(t *testing.T) {
		comments, err := svc.ListComments(uintString(public.ID), Anonymous)
		testutil.AssertNoError(t, err)
		if len(comments) != 2 || comments[0].ID != second.ID || comments[1].ID != first.ID {
			t.Errorf("unexpected order: %+v", comments)
		}
	})

	t.Run("private_requires_auth", func(t *testing.T) {
		_, err := svc.ListComments(private.UUID, Anonymous)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")

		comments, err := svc.ListComments(private.UUID, Viewer{UserID: owner.ID, Roles: []string{models.RoleUser}})
		testutil.AssertNoError(t, err)
		if len(comments) != 1 {
			t.Errorf("expected 1 comment, got %d", len(comments))
		}
	})
}
