package handler

import (
	apperrors "book-gen-ai-api/pkg/errors"
)

// missingField 将请求体绑定错误归一为缺失字段错误
// 必填键缺失导致整个请求失败，不做键存在性之外的语义校验
func missingField(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(err, apperrors.CodeMissingField, "missing required field")
}
