/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package address

import (
	"jinr.ru/greenlab/go-spi/pkg/schema"
)

const (
	NamespaceConfig  = "config"
	NamespacePointer = "pointer"
	NamespaceMemory  = "memory"
)

// Tables holds the three lookup tables of a schema. They are built once and
// never modified, so they can be shared between goroutines.
type Tables struct {
	Config   *ConfigTable
	Pointers *PointerTable
	Memories *MemoryTable
}

func NewTables(doc *schema.Document) *Tables {
	return &Tables{
		Config:   Compile(doc.Config),
		Pointers: NewPointerTable(doc.Pointers),
		Memories: NewMemoryTable(doc.Memories, doc.Bus.MessageBitWidth),
	}
}
