package invoice

import (
	"net/url"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/usecases/authenticate"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/schema"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
)

// mapForm flattens a request Struct into form values. Null fields are
// treated as absent; lists become repeated values.
func mapForm(req *structpb.Struct) url.Values {
	out := url.Values{}
	for k, v := range req.GetFields() {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_ListValue:
			for _, item := range kind.ListValue.GetValues() {
				if s, ok := scalar(item); ok {
					out.Add(k, s)
				}
			}
		default:
			if s, ok := scalar(v); ok {
				out.Set(k, s)
			}
		}
	}
	return out
}

func scalar(v *structpb.Value) (string, bool) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64), true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(kind.BoolValue), true
	default:
		return "", false
	}
}

func mapSubmission(req *structpb.Struct) schema.Submission {
	return schema.Submission(mapForm(req))
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func mapOutcome(out state.Outcome) *structpb.Struct {
	if out.IsRedirect() {
		return &structpb.Struct{Fields: map[string]*structpb.Value{
			"redirect": structpb.NewStringValue(out.Redirect),
		}}
	}
	return mapState(out.State)
}

func mapState(st *state.MutationState) *structpb.Struct {
	reply := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if st == nil {
		return reply
	}
	if len(st.Errors) > 0 {
		errs := &structpb.Struct{Fields: map[string]*structpb.Value{}}
		for field, msgs := range st.Errors {
			vals := make([]*structpb.Value, 0, len(msgs))
			for _, m := range msgs {
				vals = append(vals, structpb.NewStringValue(m))
			}
			errs.Fields[field] = structpb.NewListValue(&structpb.ListValue{Values: vals})
		}
		reply.Fields["errors"] = structpb.NewStructValue(errs)
	}
	if st.Message != nil {
		reply.Fields["message"] = structpb.NewStringValue(*st.Message)
	}
	return reply
}

func mapAuthOutcome(out authenticate.Outcome) *structpb.Struct {
	reply := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if out.IsRedirect() {
		reply.Fields["redirect"] = structpb.NewStringValue(out.Redirect)
		if out.Session != nil {
			reply.Fields["token"] = structpb.NewStringValue(out.Session.Token)
			reply.Fields["expiresAt"] = structpb.NewStringValue(out.Session.ExpiresAt.UTC().Format(time.RFC3339))
		}
		return reply
	}
	if out.Message != nil {
		reply.Fields["message"] = structpb.NewStringValue(*out.Message)
	}
	return reply
}
