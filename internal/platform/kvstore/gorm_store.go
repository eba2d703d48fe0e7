package kvstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry はkv_entriesテーブルの1行を表すGORMモデルです。
type Entry struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value []byte
}

// TableName はGORMが使用するテーブル名を指定します。
func (Entry) TableName() string { return "kv_entries" }

// GormStore はStoreインターフェースのGORM実装です。
// SQLite（組み込み）またはPostgreSQLを永続化先として使用します。
type GormStore struct {
	db *gorm.DB
}

// GormStoreがStoreを実装していることをコンパイル時に検証します。
var _ Store = (*GormStore)(nil)

// NewGormStore は指定されたgorm.DB接続でGormStoreの新しいインスタンスを生成します。
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get はキーに対応する値を取得します。
func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	if err := s.db.WithContext(ctx).First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return e.Value, nil
}

// Set はキーに値をupsertします。
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	e := Entry{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&e).Error
}

// SetMulti は複数キーへの書き込みを1つのデータベーストランザクションで実行します。
func (s *GormStore) SetMulti(ctx context.Context, entries map[string][]byte) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range entries {
			e := Entry{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&e).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete は指定されたキーを削除します。
func (s *GormStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&Entry{}).Error
}
