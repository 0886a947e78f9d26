package intel

import (
	"reflect"
	"testing"
)

func TestRecommend_NoneTriggered(t *testing.T) {
	recs := Recommend(nil)
	if len(recs) != 1 || recs[0] != DefaultRecommendation {
		t.Errorf("expected exactly the default recommendation, got %v", recs)
	}
}

func TestRecommend_OrderAndDedup(t *testing.T) {
	triggered := []Factor{
		{ID: "a", Message: "rotate credentials"},
		{ID: "b", Message: "enable dmarc"},
		{ID: "c", Message: "rotate credentials"}, // duplicate message
		{ID: "d", Message: "block sender"},
	}

	expected := []string{"rotate credentials", "enable dmarc", "block sender"}
	if got := Recommend(triggered); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestRecommend_EmptyMessagesFallBackToDefault(t *testing.T) {
	triggered := []Factor{{ID: "silent"}}
	recs := Recommend(triggered)
	if len(recs) != 1 || recs[0] != DefaultRecommendation {
		t.Errorf("factors without messages should yield the default, got %v", recs)
	}
}
