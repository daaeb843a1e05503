package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Block 富文本编辑器输出的一个节点（标题、段落、列表项等）。
// Type 是变体标签，Props 为该变体的格式属性，Content 为行内内容（原样保留），
// Children 为嵌套子节点。Props/Children 为 nil 表示客户端没有发送该字段，
// 编码时省略；其余未知字段保存在 Extra 里原样写回。
type Block struct {
	ID       string
	Type     string
	Props    map[string]any
	Content  json.RawMessage
	Children []Block
	Extra    map[string]json.RawMessage
}

var jsonNull = []byte("null")

func (b Block) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Extra)+5)
	for k, v := range b.Extra {
		out[k] = v
	}
	if b.ID != "" {
		out["id"] = b.ID
	}
	out["type"] = b.Type
	if b.Props != nil {
		out["props"] = b.Props
	}
	if len(b.Content) > 0 {
		out["content"] = b.Content
	}
	if b.Children != nil {
		out["children"] = b.Children
	}
	return json.Marshal(out)
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Block{}
	for k, v := range raw {
		var err error
		switch {
		case k == "id":
			err = json.Unmarshal(v, &b.ID)
		case k == "type":
			err = json.Unmarshal(v, &b.Type)
		case k == "content":
			b.Content = append(json.RawMessage(nil), v...)
		case (k == "props" || k == "children") && bytes.Equal(bytes.TrimSpace(v), jsonNull):
			// 显式 null 原样保留
			b.setExtra(k, v)
		case k == "props":
			err = json.Unmarshal(v, &b.Props)
		case k == "children":
			err = json.Unmarshal(v, &b.Children)
		default:
			b.setExtra(k, v)
		}
		if err != nil {
			return fmt.Errorf("block %s: %w", k, err)
		}
	}
	return nil
}

func (b *Block) setExtra(k string, v json.RawMessage) {
	if b.Extra == nil {
		b.Extra = make(map[string]json.RawMessage)
	}
	b.Extra[k] = append(json.RawMessage(nil), v...)
}

// Document 有序的 block 树。
type Document []Block

// EncodeDocument 序列化为存储用的 JSON 文本。nil 文档存为空数组。
func EncodeDocument(doc Document) ([]byte, error) {
	if doc == nil {
		doc = Document{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

// DecodeDocument 从存储的 JSON 文本还原 block 树。
func DecodeDocument(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}
