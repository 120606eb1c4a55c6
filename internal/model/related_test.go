package model

import "testing"

func TestRelatedRoundTrip(t *testing.T) {
	refs := []RelatedRef{GoalRef{ID: "g1"}, PaperRef{ID: "p1"}, TaskRef{ID: "t1"}, TaskRef{}}

	for _, ref := range refs {
		var a Activity
		a.SetRelated(ref)
		got := a.Related()
		if got == nil || got.Kind() != ref.Kind() || got.RefID() != ref.RefID() {
			t.Errorf("还原的引用不符: 期望 %#v，实际 %#v", ref, got)
		}
	}

	var a Activity
	a.SetRelated(nil)
	if a.Related() != nil {
		t.Error("未关联资源时应返回 nil")
	}

	unknown := "Meeting"
	if parseRelated(&unknown, nil) != nil {
		t.Error("未知类别应返回 nil")
	}
}

func TestRelatedPath(t *testing.T) {
	tests := map[string]RelatedRef{
		"/goals/g1":  GoalRef{ID: "g1"},
		"/papers/p1": PaperRef{ID: "p1"},
		"/tasks/t1":  TaskRef{ID: "t1"},
		"":           nil,
	}
	for want, ref := range tests {
		if got := RelatedPath(ref); got != want {
			t.Errorf("RelatedPath(%#v) 期望 %q，实际 %q", ref, want, got)
		}
	}
}

func TestNotificationSetRelated_ActionURL(t *testing.T) {
	var n Notification
	n.SetRelated(TaskRef{ID: "t1"})
	if n.ActionURL != "/tasks/t1" {
		t.Errorf("期望 ActionURL=/tasks/t1，实际 %q", n.ActionURL)
	}
}

func TestPaperAuthor_AuthorUserID(t *testing.T) {
	uid := "u1"
	tests := []struct {
		name   string
		author PaperAuthor
		want   string
	}{
		{"仅外键", PaperAuthor{UserID: &uid}, "u1"},
		{"已展开", PaperAuthor{User: &User{BaseModel: BaseModel{ID: "u2"}}}, "u2"},
		{"外部作者", PaperAuthor{Name: "Someone"}, ""},
	}
	for _, tt := range tests {
		if got := tt.author.AuthorUserID(); got != tt.want {
			t.Errorf("%s: 期望 %q，实际 %q", tt.name, tt.want, got)
		}
	}
}
