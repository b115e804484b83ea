package jsonschema

// contentStep checks that a string instance decodes under contentEncoding,
// parses under contentMediaType, and that the parsed value validates against
// contentSchema. The step is emitted only when content keywords assert
// (draft 7, or the compiler's content assertion forced on); otherwise they
// stay annotations. Non-string instances skip content validation entirely,
// contentSchema included.
//
// References:
//   - https://json-schema.org/draft/2020-12/json-schema-validation#name-contentencoding
//   - https://json-schema.org/draft/2020-12/json-schema-validation#name-contentmediatype
//   - https://json-schema.org/draft/2020-12/json-schema-validation#name-contentschema
type contentStep struct {
	encoding  *string
	mediaType *string
	child     *ValidatorNode
}

func (st *contentStep) keyword() string { return "contentEncoding" }

func (st *contentStep) execute(ctx *evalContext, instance any, result *EvaluationResult, _ *EvaluationTracker) *EvaluationError {
	dataStr, isString := instance.(string)
	if !isString {
		return nil
	}

	var content []byte
	var parsedData any
	var err error

	if st.encoding != nil {
		decoder, exists := ctx.compiler.Decoders[*st.encoding]
		if !exists {
			return NewEvaluationError("contentEncoding", "unsupported_encoding", "Unsupported encoding '{encoding}' specified", map[string]any{
				"encoding": *st.encoding,
			})
		}
		content, err = decoder(dataStr)
		if err != nil {
			return NewEvaluationError("contentEncoding", "invalid_encoding", "Error decoding data with '{encoding}'", map[string]any{
				"error":    err.Error(),
				"encoding": *st.encoding,
			})
		}
	} else {
		content = []byte(dataStr)
	}

	if st.mediaType != nil {
		unmarshal, exists := ctx.compiler.MediaTypes[*st.mediaType]
		if !exists {
			return NewEvaluationError("contentMediaType", "unsupported_media_type", "Unsupported media type '{media_type}' specified", map[string]any{
				"media_type": *st.mediaType,
			})
		}
		parsedData, err = unmarshal(content)
		if err != nil {
			return NewEvaluationError("contentMediaType", "invalid_media_type", "Error unmarshalling data with media type '{media_type}'", map[string]any{
				"error":      err.Error(),
				"media_type": *st.mediaType,
			})
		}
	} else {
		parsedData = content
	}

	if st.child != nil {
		childResult, _ := st.child.run(ctx, parsedData, false)
		if childResult != nil {
			childResult.SetEvaluationPath("/contentSchema").
				SetInstanceLocation("")
			result.AddDetail(childResult)

			if !childResult.IsValid() {
				return NewEvaluationError("contentSchema", "content_schema_mismatch", "Content does not match the schema")
			}
		}
	}

	return nil
}
